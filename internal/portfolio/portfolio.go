// Package portfolio holds the profile shown in the host window and answered
// by the terminal's info commands.
package portfolio

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultYAML []byte

var ErrNoName = errors.New("portfolio has no name")

type Contact struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
}

type Experience struct {
	Title       string `yaml:"title"`
	Company     string `yaml:"company"`
	Period      string `yaml:"period"`
	Description string `yaml:"description"`
}

type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	GitHub       string   `yaml:"github"`
	Demo         string   `yaml:"demo,omitempty"`
}

type Education struct {
	Degree       string `yaml:"degree"`
	School       string `yaml:"school"`
	Period       string `yaml:"period"`
	Description  string `yaml:"description"`
	Certificates string `yaml:"certificates,omitempty"`
}

type Data struct {
	Name       string       `yaml:"name"`
	Handle     string       `yaml:"handle"`
	Resume     string       `yaml:"resume"`
	About      string       `yaml:"about"`
	Contact    Contact      `yaml:"contact"`
	Skills     []string     `yaml:"skills"`
	Experience []Experience `yaml:"experience"`
	Projects   []Project    `yaml:"projects"`
	Education  []Education  `yaml:"education"`
}

// Default returns the embedded profile.
func Default() *Data {
	d, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("portfolio: embedded data: %v", err))
	}
	return d
}

// Load reads a profile from path. An empty path yields the embedded one.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse portfolio: %w", err)
	}
	if d.Name == "" {
		return nil, ErrNoName
	}
	if d.Handle == "" {
		d.Handle = "portfolio"
	}
	return &d, nil
}
