package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_content.yaml
var defaultContent []byte

// NavLink is one entry of the header menu.
type NavLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Section is a revealed block of the landing page.
type Section struct {
	ID      string `yaml:"id"`
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// ContactBlock configures the contact form copy.
type ContactBlock struct {
	Heading     string `yaml:"heading"`
	Intro       string `yaml:"intro"`
	SubmitLabel string `yaml:"submitLabel"`
}

// Content is the editable copy of the landing page.
type Content struct {
	Title    string       `yaml:"title"`
	Brand    string       `yaml:"brand"`
	Tagline  string       `yaml:"tagline"`
	Nav      []NavLink    `yaml:"nav"`
	Sections []Section    `yaml:"sections"`
	Contact  ContactBlock `yaml:"contact"`
	Footer   string       `yaml:"footer"`
}

// LoadContent reads content from path, or the built-in copy when path is empty.
func LoadContent(path string) (Content, error) {
	raw := defaultContent
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Content{}, fmt.Errorf("read site content: %w", err)
		}
		raw = data
	}
	return ParseContent(raw)
}

// ParseContent decodes YAML content and fills defaults.
func ParseContent(raw []byte) (Content, error) {
	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Content{}, fmt.Errorf("parse site content: %w", err)
	}
	if strings.TrimSpace(c.Title) == "" {
		return Content{}, errors.New("parse site content: title is required")
	}
	if c.Brand == "" {
		c.Brand = c.Title
	}
	if c.Contact.Heading == "" {
		c.Contact.Heading = "Contact"
	}
	if c.Contact.SubmitLabel == "" {
		c.Contact.SubmitLabel = "Send"
	}
	if c.Footer == "" {
		c.Footer = c.Title
	}
	return c, nil
}
