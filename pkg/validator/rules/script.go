package rules

import (
	"errors"
	"strings"

	"go.starlark.net/starlark"

	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/validator"

	starlarkscript "github.com/tool-recommender-bot/redpen/internal/starlark"
)

func init() {
	validator.Register(validator.Definition{
		Name:        "Script",
		Description: "Runs the validate(text) function of a Starlark script on every sentence.",
		Attributes:  []string{"script"},
		New:         func() validator.Validator { return newScript() },
	})
}

type script struct {
	validator.Base
	script *starlarkscript.Script
}

func newScript() *script {
	return &script{Base: validator.NewBase("Script")}
}

func (v *script) Configure(cfg validator.Config) error {
	if err := v.Base.Configure(cfg); err != nil {
		return err
	}
	if !cfg.Attributes.Has("script") {
		return &validator.ConfigError{Validator: cfg.Name, Attribute: "script", Err: validator.ErrMissingAttribute}
	}

	path := cfg.ResolvePath(strings.TrimSpace(cfg.Attributes["script"]))
	predeclared := starlark.StringDict{
		"attributes": starlarkscript.StringDict(cfg.Attributes),
		"properties": starlarkscript.NumberDict(cfg.Properties),
		"language":   starlark.String(cfg.Language),
	}

	loaded, err := starlarkscript.LoadScript(path, predeclared, nil)
	if err != nil {
		var scriptErr *starlarkscript.ScriptError
		if errors.As(err, &scriptErr) {
			return &validator.ConfigError{Validator: cfg.Name, Attribute: "script", Err: err}
		}
		return &validator.ResourceError{Validator: cfg.Name, Path: path, Err: err}
	}
	v.script = loaded
	return nil
}

func (v *script) ValidateSentence(s model.Sentence) ([]validator.ValidationError, error) {
	msgs, err := v.script.Messages(s.Content)
	if err != nil {
		return nil, err
	}
	errs := make([]validator.ValidationError, 0, len(msgs))
	for _, msg := range msgs {
		errs = append(errs, v.NewError(s, msg))
	}
	return errs, nil
}
