// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/render"
)

//go:embed shaders/*.glsl
var bundledShaders embed.FS

// page is the data of the index template.
type page struct {
	Title       string
	Canvas      CanvasConfig
	VertexID    string
	VertexTag   string
	Vertex      string
	FragmentID  string
	FragmentTag string
	Fragment    string
	Argv        string
}

// renderPage renders the index page for cfg, embedding both shader
// sources as script elements.
func renderPage(cfg Config) ([]byte, error) {
	vs, err := readShader(cfg.Shaders.Vertex, "shaders/vertex.glsl")
	if err != nil {
		return nil, err
	}
	fs, err := readShader(cfg.Shaders.Fragment, "shaders/fragment.glsl")
	if err != nil {
		return nil, err
	}
	argv, err := json.Marshal(cfg.argv())
	if err != nil {
		return nil, err
	}
	t, err := template.New("").Parse(indexTemplate)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := t.Execute(&b, page{
		Title:       cfg.Title,
		Canvas:      cfg.Canvas,
		VertexID:    render.DefaultVertexID,
		VertexTag:   render.VertexTag,
		Vertex:      vs,
		FragmentID:  render.DefaultFragmentID,
		FragmentTag: render.FragmentTag,
		Fragment:    fs,
		Argv:        string(argv),
	}); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func readShader(path, bundled string) (string, error) {
	var (
		src []byte
		err error
	)
	if path == "" {
		src, err = bundledShaders.ReadFile(bundled)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	if strings.Contains(strings.ToLower(string(src)), "</script") {
		return "", fmt.Errorf("%s: shader source must not contain </script>", path)
	}
	return string(src), nil
}

const indexTemplate = `<!doctype html>
<html>
	<head>
		<meta charset="utf-8">
		{{ if .Title }}<title>{{.Title}}</title>{{ end }}
		<script id="{{.VertexID}}" type="{{.VertexTag}}">
{{.Vertex}}
		</script>
		<script id="{{.FragmentID}}" type="{{.FragmentTag}}">
{{.Fragment}}
		</script>
		<script src="wasm_exec.js"></script>
		<script>
(() => {
	const go = new Go();
	go.argv = go.argv.concat({{.Argv}});
	if (!WebAssembly.instantiateStreaming) { // polyfill
		WebAssembly.instantiateStreaming = async (resp, importObject) => {
			const source = await (await resp).arrayBuffer();
			return await WebAssembly.instantiate(source, importObject);
		};
	}
	window.addEventListener("load", () => {
		WebAssembly.instantiateStreaming(fetch("main.wasm"), go.importObject).then((result) => {
			go.run(result.instance);
		});
	});
})();
		</script>
	</head>
	<body>
		<canvas id="{{.Canvas.ID}}" width="{{.Canvas.Width}}" height="{{.Canvas.Height}}"></canvas>
	</body>
</html>`
