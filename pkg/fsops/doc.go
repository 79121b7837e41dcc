// Copyright 2025 the voltshift authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fsops contains the filesystem primitives every other package
// uses to touch disk: the guarded writer (write only if different, back
// up before any destructive overwrite), the backup manager, and the
// subtree relocator. Nothing here ever deletes pre-existing content
// except as the second half of a rename fallback.
package fsops
