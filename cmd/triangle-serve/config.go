// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jooo0922/2-2-loading-shaders-from-dom/render"
	"github.com/jooo0922/2-2-loading-shaders-from-dom/web"
)

// Config is the triangle-serve configuration file.
type Config struct {
	Addr string `yaml:"addr"`
	// Dir holds main.wasm and wasm_exec.js.
	Dir          string       `yaml:"dir"`
	Title        string       `yaml:"title"`
	Canvas       CanvasConfig `yaml:"canvas"`
	ClearColor   string       `yaml:"clear_color"`
	ContextKinds []string     `yaml:"context_kinds"`
	Debug        bool         `yaml:"debug"`
	Shaders      ShaderConfig `yaml:"shaders"`
}

type CanvasConfig struct {
	ID     string `yaml:"id"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ShaderConfig names GLSL files. Empty paths select the bundled shaders.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

func defaultConfig() Config {
	return Config{
		Addr:  ":8080",
		Dir:   ".",
		Title: "Loading shaders from the DOM",
		Canvas: CanvasConfig{
			ID:     web.DefaultConfig().CanvasID,
			Width:  500,
			Height: 500,
		},
		ClearColor:   "lime",
		ContextKinds: append([]string(nil), render.DefaultContextKinds...),
	}
}

// loadConfig reads the YAML file at path over the defaults. A missing
// file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

const htmlSpecial = `<>"'&`

func (c Config) validate() error {
	if c.Canvas.ID == "" {
		return errors.New("canvas.id is empty")
	}
	// Both are written into the page unescaped.
	if strings.ContainsAny(c.Canvas.ID, htmlSpecial+" ") {
		return fmt.Errorf("invalid canvas.id %q", c.Canvas.ID)
	}
	if strings.ContainsAny(c.Title, htmlSpecial) {
		return fmt.Errorf("invalid title %q", c.Title)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if _, err := web.ParseColor(c.ClearColor); err != nil {
		return err
	}
	if len(c.ContextKinds) == 0 {
		return errors.New("context_kinds is empty")
	}
	for _, k := range c.ContextKinds {
		if k == "" || strings.ContainsAny(k, ", ") {
			return fmt.Errorf("invalid context kind %q", k)
		}
	}
	return nil
}

// argv returns the command line passed to the wasm program.
func (c Config) argv() []string {
	args := []string{
		"-canvas", c.Canvas.ID,
		"-clear", c.ClearColor,
		"-kinds", strings.Join(c.ContextKinds, ","),
	}
	if c.Debug {
		args = append(args, "-debug")
	}
	return args
}
