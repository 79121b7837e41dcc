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

// Package scaffold holds the generated artifact payloads: the electron
// runtime entries, the root config documents, the index.html template
// and the placeholder assets. The engine treats all of these as opaque
// bytes; nothing in here has behavior.
package scaffold

import (
	"fmt"
	"regexp"

	"github.com/voltshift/voltshift/pkg/manifest"
)

// ModuleScriptPattern matches a module script tag, the single anchor the
// patcher rewrites in index.html. Non-greedy within one tag.
var ModuleScriptPattern = regexp.MustCompile(`<script[^>]*\btype="module"[^>]*>\s*</script>`)

// BodyCloseMarker is where the script tag is inserted when index.html
// has no module script tag at all.
const BodyCloseMarker = "</body>"

// EntryScriptTag renders the module script tag pointing at the UI entry.
func EntryScriptTag(entryPath string) string {
	return fmt.Sprintf(`<script type="module" src="%s"></script>`, entryPath)
}

// IndexHTML renders the full fallback index.html used when the project
// has none.
func IndexHTML(entryPath string) []byte {
	return []byte(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <link rel="icon" type="image/png" href="/icon.png" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>voltshift app</title>
  </head>
  <body>
    <div id="app"></div>
    %s
  </body>
</html>
`, EntryScriptTag(entryPath)))
}

// ElectronMain is the generated electron main-process entry.
const ElectronMain = `import { app, BrowserWindow } from 'electron';
import path from 'node:path';
import { fileURLToPath } from 'node:url';

const __dirname = path.dirname(fileURLToPath(import.meta.url));

const createWindow = () => {
  const win = new BrowserWindow({
    width: 1280,
    height: 800,
    webPreferences: {
      preload: path.join(__dirname, 'preload.js'),
    },
  });

  if (process.env.VITE_DEV_SERVER_URL) {
    win.loadURL(process.env.VITE_DEV_SERVER_URL);
  } else {
    win.loadFile(path.join(__dirname, '../dist/index.html'));
  }
};

app.whenReady().then(() => {
  createWindow();

  app.on('activate', () => {
    if (BrowserWindow.getAllWindows().length === 0) createWindow();
  });
});

app.on('window-all-closed', () => {
  if (process.platform !== 'darwin') app.quit();
});
`

// ElectronPreload is the generated electron preload entry.
const ElectronPreload = `import { contextBridge } from 'electron';

contextBridge.exposeInMainWorld('voltshift', {
  platform: process.platform,
});
`

// ViteConfig is the generated vite.config.mjs.
const ViteConfig = `import { defineConfig } from 'vite';

export default defineConfig({
  base: './',
  build: {
    outDir: 'dist',
  },
  server: {
    port: 5173,
    strictPort: true,
  },
});
`

// ElectronBuilderConfig is the generated electron-builder.yml.
const ElectronBuilderConfig = `appId: com.voltshift.app
directories:
  output: release
files:
  - dist/**
  - electron/**
icon: public/icon.png
`

// PlaceholderPNG is a minimal 1x1 transparent PNG, written to the
// public-assets directory only when no asset exists there yet.
var PlaceholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0b, 0x49, 0x44, 0x41, 0x54, 0x78, 0xda, 0x63, 0x60, 0x00, 0x02, 0x00,
	0x00, 0x05, 0x00, 0x01, 0xe9, 0xfa, 0xdc, 0xd8, 0x00, 0x00, 0x00, 0x00,
	0x49, 0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// EntryCandidates is the prioritized list of UI entry filenames the
// locator scans for under the relocated source directory.
var EntryCandidates = []string{
	"main.tsx", "main.ts", "main.jsx", "main.js",
	"index.tsx", "index.ts", "index.jsx", "index.js",
}

// DefaultEntry is used when no candidate exists.
const DefaultEntry = "main.js"

// Scripts returns the desired script block, in the order it should
// appear when inserted fresh.
func Scripts() *manifest.Map {
	m := manifest.NewMap()
	m.Set("dev", "vite")
	m.Set("build", "vite build")
	m.Set("preview", "vite preview")
	m.Set("electron:dev", `concurrently -k "vite" "wait-on tcp:5173 && cross-env VITE_DEV_SERVER_URL=http://localhost:5173 electron ."`)
	m.Set("electron:build", "vite build && electron-builder")
	return m
}

// DevDependencies returns the desired dependency declarations. These
// never override an existing declaration.
func DevDependencies() *manifest.Map {
	m := manifest.NewMap()
	m.Set("vite", "^5.4.2")
	m.Set("electron", "^31.3.1")
	m.Set("electron-builder", "^24.13.3")
	m.Set("concurrently", "^8.2.2")
	m.Set("wait-on", "^7.2.0")
	m.Set("cross-env", "^7.0.3")
	return m
}

// ManifestType is the forced top-level module-mode marker.
const ManifestType = "module"

// ManifestMain is the entry-point field value, set only when absent.
const ManifestMain = "electron/main.js"
