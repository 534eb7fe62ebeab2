package redpen_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tool-recommender-bot/redpen/internal/testutil"
	"github.com/tool-recommender-bot/redpen/pkg/config"
	"github.com/tool-recommender-bot/redpen/pkg/model"
	"github.com/tool-recommender-bot/redpen/pkg/redpen"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
	_ "github.com/tool-recommender-bot/redpen/pkg/validator/rules"
)

func buildConfig(t *testing.T, lang string, vcs ...config.ValidatorConfiguration) *config.Configuration {
	t.Helper()
	b := config.NewBuilder().SetLanguage(lang)
	for _, vc := range vcs {
		b.AddValidatorConfig(vc)
	}
	cfg, err := b.Build()
	require.NoError(t, err)
	return cfg
}

func singleSentenceDoc(name, text string, line int) *model.Document {
	return model.NewDocumentBuilder(name).
		AddSection(1).
		AddParagraph().
		AddSentence(model.NewSentence(text, line)).
		MustBuild()
}

func TestValidate_SingleDocument(t *testing.T) {
	cfg := buildConfig(t, "ja", config.NewValidatorConfiguration("KatakanaEndHyphen"))
	rp, err := redpen.New(cfg, redpen.WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)

	doc := singleSentenceDoc("doc.txt", "濃いコーヒーは胃にわるい。", 1)
	results, err := rp.Validate(context.Background(), model.Collection{doc})
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.Len(t, results[doc], 1)
	assert.Equal(t, "KatakanaEndHyphen", results[doc][0].Validator)
	assert.Equal(t, 1, results[doc][0].LineNumber)
}

func TestValidate_SkipListSuppresses(t *testing.T) {
	cfg := buildConfig(t, "ja",
		config.NewValidatorConfiguration("KatakanaEndHyphen").WithAttribute("list", "コーヒー"))
	rp, err := redpen.New(cfg)
	require.NoError(t, err)

	doc := singleSentenceDoc("doc.txt", "濃いコーヒーは胃にわるい。", 1)
	results, err := rp.Validate(context.Background(), model.Collection{doc})
	require.NoError(t, err)
	require.Contains(t, results, doc)
	assert.Empty(t, results[doc])
}

func TestValidate_Order(t *testing.T) {
	cfg := buildConfig(t, "en",
		config.NewValidatorConfiguration("SentenceLength").WithProperty("max_len", 10),
		config.NewValidatorConfiguration("KatakanaEndHyphen"),
	)
	rp, err := redpen.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"SentenceLength", "KatakanaEndHyphen"}, rp.Validators())
	assert.Same(t, cfg, rp.Configuration())

	doc := model.NewDocumentBuilder("doc.md").
		AddSection(1, model.NewSentence("A very long heading line", 1)).
		AddParagraph().
		AddSentence(model.NewSentence("コーヒー", 3)).
		AddSentence(model.NewSentence("This sentence is too long.", 3)).
		AddSection(2, model.NewSentence("サーバー", 5)).
		AddParagraph().
		AddSentence(model.NewSentence("Another long sentence.", 6)).
		MustBuild()

	results, err := rp.Validate(context.Background(), model.Collection{doc})
	require.NoError(t, err)

	type located struct {
		validator string
		line      int
	}
	var got []located
	for _, e := range results[doc] {
		got = append(got, located{e.Validator, e.LineNumber})
	}

	assert.Equal(t, []located{
		{"SentenceLength", 1},
		{"SentenceLength", 3},
		{"SentenceLength", 6},
		{"KatakanaEndHyphen", 3},
		{"KatakanaEndHyphen", 5},
	}, got)
}

func TestValidate_Idempotent(t *testing.T) {
	cfg := buildConfig(t, "ja",
		config.NewValidatorConfiguration("KatakanaEndHyphen"),
		config.NewValidatorConfiguration("SentenceLength").WithProperty("max_len", 5),
	)
	rp, err := redpen.New(cfg)
	require.NoError(t, err)

	docs := model.Collection{
		singleSentenceDoc("a.txt", "コーヒー・コンピューター", 1),
		singleSentenceDoc("b.txt", "", 1),
	}

	first, err := rp.Validate(context.Background(), docs)
	require.NoError(t, err)
	second, err := rp.Validate(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first[docs[0]], 3)
	assert.Empty(t, first[docs[1]], "empty sentence yields no diagnostics")
}

func TestValidate_CaseInsensitiveName(t *testing.T) {
	cfg := buildConfig(t, "ja", config.NewValidatorConfiguration("katakanaendhyphen"))
	rp, err := redpen.New(cfg)
	require.NoError(t, err)

	doc := singleSentenceDoc("doc.txt", "コーヒー", 1)
	results, err := rp.Validate(context.Background(), model.Collection{doc})
	require.NoError(t, err)
	require.Len(t, results[doc], 1)
	assert.Equal(t, "KatakanaEndHyphen", results[doc][0].Validator)
}

func TestNew_UnknownValidator(t *testing.T) {
	cfg := buildConfig(t, "en",
		config.NewValidatorConfiguration("SentenceLength"),
		config.NewValidatorConfiguration("NoSuchValidator"),
	)

	rp, err := redpen.New(cfg)
	assert.Nil(t, rp)

	var unk *validator.UnknownValidatorError
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, "NoSuchValidator", unk.Name)
	assert.Contains(t, unk.Available, "KatakanaEndHyphen")
}

func TestNew_ConfigureFailures(t *testing.T) {
	tests := []struct {
		name      string
		vc        config.ValidatorConfiguration
		wantAttr  string
		wantPath  bool
		wantIsErr error
	}{
		{
			name:      "missing required attribute",
			vc:        config.NewValidatorConfiguration("InvalidExpression"),
			wantAttr:  "list",
			wantIsErr: validator.ErrMissingAttribute,
		},
		{
			name:     "malformed property",
			vc:       config.NewValidatorConfiguration("SentenceLength").WithAttribute("max_len", "long"),
			wantAttr: "max_len",
		},
		{
			name:     "missing dictionary",
			vc:       config.NewValidatorConfiguration("KatakanaEndHyphen").WithAttribute("dict", "/nonexistent/skip.txt"),
			wantPath: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := redpen.New(buildConfig(t, "ja", tt.vc))
			require.Error(t, err)

			if tt.wantPath {
				var resErr *validator.ResourceError
				require.ErrorAs(t, err, &resErr)
				assert.Equal(t, tt.vc.Name, resErr.Validator)
				assert.Equal(t, "/nonexistent/skip.txt", resErr.Path)
				return
			}

			var cfgErr *validator.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.vc.Name, cfgErr.Validator)
			assert.Equal(t, tt.wantAttr, cfgErr.Attribute)
			if tt.wantIsErr != nil {
				assert.ErrorIs(t, err, tt.wantIsErr)
			}
		})
	}
}

func TestNew_NilConfiguration(t *testing.T) {
	_, err := redpen.New(nil)
	assert.Error(t, err)
}

// faulty validators for registry-injected tests

type panicking struct{ validator.Base }

func (p *panicking) ValidateSentence(s model.Sentence) ([]validator.ValidationError, error) {
	if s.Content == "boom" {
		panic("unexpected input")
	}
	return nil, nil
}

type failing struct{ validator.Base }

func (f *failing) ValidateParagraph(*model.Paragraph) ([]validator.ValidationError, error) {
	return nil, errors.New("dictionary corrupted")
}

type ambiguous struct{ validator.Base }

func (a *ambiguous) ValidateSentence(model.Sentence) ([]validator.ValidationError, error) {
	return nil, nil
}

func (a *ambiguous) ValidateParagraph(*model.Paragraph) ([]validator.ValidationError, error) {
	return nil, nil
}

type counting struct {
	validator.Base
	calls *atomic.Int64
}

func (c *counting) ValidateSentence(s model.Sentence) ([]validator.ValidationError, error) {
	c.calls.Add(1)
	return []validator.ValidationError{c.NewError(s, "seen")}, nil
}

type unconfigurable struct{ validator.Base }

func (u *unconfigurable) Configure(validator.Config) error { return errors.New("not today") }

func (u *unconfigurable) ValidateDocument(*model.Document) ([]validator.ValidationError, error) {
	return nil, nil
}

func TestValidate_FaultAbortsRun(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register(validator.Definition{Name: "Panicking", New: func() validator.Validator {
		return &panicking{validator.NewBase("Panicking")}
	}})
	reg.Register(validator.Definition{Name: "Failing", New: func() validator.Validator {
		return &failing{validator.NewBase("Failing")}
	}})

	tests := []struct {
		name      string
		validator string
		wantMsg   string
	}{
		{"panic", "Panicking", "panic: unexpected input"},
		{"error", "Failing", "dictionary corrupted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := buildConfig(t, "en", config.NewValidatorConfiguration(tt.validator))
			rp, err := redpen.New(cfg, redpen.WithRegistry(reg))
			require.NoError(t, err)

			docs := model.Collection{
				singleSentenceDoc("ok.txt", "fine", 1),
				singleSentenceDoc("bad.txt", "boom", 1),
			}
			results, err := rp.Validate(context.Background(), docs)
			assert.Nil(t, results, "no partial results")

			var fault *redpen.ValidationFault
			require.ErrorAs(t, err, &fault)
			assert.Equal(t, tt.validator, fault.Validator)
			assert.Contains(t, fault.Error(), tt.wantMsg)
			if tt.validator == "Panicking" {
				assert.Equal(t, "bad.txt", fault.Document)
			} else {
				assert.Equal(t, "ok.txt", fault.Document)
			}
		})
	}
}

func TestNew_InvalidGranularity(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register(validator.Definition{Name: "Ambiguous", New: func() validator.Validator {
		return &ambiguous{validator.NewBase("Ambiguous")}
	}})

	_, err := redpen.New(buildConfig(t, "en", config.NewValidatorConfiguration("Ambiguous")), redpen.WithRegistry(reg))
	var cfgErr *validator.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Ambiguous", cfgErr.Validator)
}

func TestNew_PlainConfigureErrorIsWrapped(t *testing.T) {
	reg := validator.NewRegistry()
	reg.Register(validator.Definition{Name: "Unconfigurable", New: func() validator.Validator {
		return &unconfigurable{validator.NewBase("Unconfigurable")}
	}})

	_, err := redpen.New(buildConfig(t, "en", config.NewValidatorConfiguration("Unconfigurable")), redpen.WithRegistry(reg))
	var cfgErr *validator.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Unconfigurable", cfgErr.Validator)
	assert.Contains(t, err.Error(), "not today")
}

func TestNew_OneInstancePerRun(t *testing.T) {
	var constructed atomic.Int64
	calls := &atomic.Int64{}
	reg := validator.NewRegistry()
	reg.Register(validator.Definition{Name: "Counting", New: func() validator.Validator {
		constructed.Add(1)
		return &counting{Base: validator.NewBase("Counting"), calls: calls}
	}})

	rp, err := redpen.New(buildConfig(t, "en", config.NewValidatorConfiguration("Counting")), redpen.WithRegistry(reg))
	require.NoError(t, err)

	docs := model.Collection{
		singleSentenceDoc("a.txt", "one", 1),
		singleSentenceDoc("b.txt", "two", 1),
		singleSentenceDoc("c.txt", "three", 1),
	}
	results, err := rp.Validate(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, int64(1), constructed.Load())
	assert.Equal(t, int64(3), calls.Load())
	assert.Equal(t, 3, results.Total())
}

func TestValidate_Cancelled(t *testing.T) {
	cfg := buildConfig(t, "ja", config.NewValidatorConfiguration("KatakanaEndHyphen"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, concurrency := range []int{1, 4} {
		t.Run(fmt.Sprintf("concurrency=%d", concurrency), func(t *testing.T) {
			rp, err := redpen.New(cfg, redpen.WithConcurrency(concurrency))
			require.NoError(t, err)

			docs := model.Collection{singleSentenceDoc("a.txt", "コーヒー", 1), singleSentenceDoc("b.txt", "コーヒー", 1)}
			results, err := rp.Validate(ctx, docs)
			assert.Nil(t, results)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestValidate_ConcurrentMatchesSequential(t *testing.T) {
	cfg := buildConfig(t, "ja",
		config.NewValidatorConfiguration("KatakanaEndHyphen"),
		config.NewValidatorConfiguration("SentenceLength").WithProperty("max_len", 8),
		config.NewValidatorConfiguration("ParagraphNumber").WithProperty("max_num", 1),
	)

	var docs model.Collection
	for i := 0; i < 20; i++ {
		b := model.NewDocumentBuilder(fmt.Sprintf("doc%02d.txt", i)).AddSection(1)
		for j := 0; j <= i%3; j++ {
			b.AddParagraph().
				AddSentence(model.NewSentence("コーヒー・コンピューターが好きです。", j*2+1)).
				AddSentence(model.NewSentence("短い。", j*2+1))
		}
		docs = append(docs, b.MustBuild())
	}

	sequential, err := redpen.New(cfg)
	require.NoError(t, err)
	want, err := sequential.Validate(context.Background(), docs)
	require.NoError(t, err)

	parallel, err := redpen.New(cfg, redpen.WithConcurrency(4))
	require.NoError(t, err)
	got, err := parallel.Validate(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Len(t, got, len(docs))
}

func TestValidate_LogsRunID(t *testing.T) {
	logger, buf := testutil.NewCaptureLogger()
	rp, err := redpen.New(buildConfig(t, "ja", config.NewValidatorConfiguration("KatakanaEndHyphen")), redpen.WithLogger(logger))
	require.NoError(t, err)

	_, err = rp.Validate(context.Background(), model.Collection{singleSentenceDoc("a.txt", "コーヒー", 1)})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"run_id"`)
	assert.Contains(t, out, `"msg":"validation finished"`)
	assert.Contains(t, out, `"diagnostics":1`)
}

func TestValidateDocument(t *testing.T) {
	rp, err := redpen.New(buildConfig(t, "ja", config.NewValidatorConfiguration("KatakanaEndHyphen")))
	require.NoError(t, err)

	errs, err := rp.ValidateDocument(context.Background(), singleSentenceDoc("a.txt", "コーヒー", 4))
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].LineNumber)
}
