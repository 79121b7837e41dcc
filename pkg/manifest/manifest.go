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

package manifest

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/voltshift/voltshift/pkg/fsops"
	"gitlab.com/tozd/go/errors"
)

// 📖 Load reads and parses the manifest at path. A missing manifest is
// an error; the caller treats it as fatal, there is nothing to merge
// into.
func Load(ctx context.Context, path string) (*Document, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading manifest")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("manifest %s does not exist", path)
		}
		return nil, errors.Errorf("reading manifest: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Errorf("parsing manifest %s: %w", path, err)
	}

	return doc, nil
}

// 💾 Save persists the document through the guarded writer with force
// set, so the manifest always gets a fresh backup before mutation.
func Save(ctx context.Context, doc *Document, path string) (fsops.WriteResult, error) {
	data, err := doc.MarshalIndent()
	if err != nil {
		return fsops.WriteResult{Path: path}, err
	}

	res, err := fsops.Write(ctx, path, data, true)
	if err != nil {
		return res, errors.Errorf("writing manifest: %w", err)
	}
	return res, nil
}
