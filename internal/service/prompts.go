package service

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

type promptTemplate struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`

	user *template.Template
}

type promptSet struct {
	Doubt         promptTemplate `yaml:"doubt"`
	Homework      promptTemplate `yaml:"homework"`
	PaperAnalysis promptTemplate `yaml:"paper_analysis"`
	QuestionPaper promptTemplate `yaml:"question_paper"`
}

func loadPrompts(data []byte) (*promptSet, error) {
	var ps promptSet
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	for name, pt := range map[string]*promptTemplate{
		"doubt":          &ps.Doubt,
		"homework":       &ps.Homework,
		"paper_analysis": &ps.PaperAnalysis,
		"question_paper": &ps.QuestionPaper,
	} {
		tmpl, err := template.New(name).Parse(pt.User)
		if err != nil {
			return nil, fmt.Errorf("parse prompt %s: %w", name, err)
		}
		pt.user = tmpl
	}
	return &ps, nil
}

func (pt *promptTemplate) render(data any) (string, error) {
	var b strings.Builder
	if err := pt.user.Execute(&b, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}
