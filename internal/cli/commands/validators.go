package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tool-recommender-bot/redpen/internal/cli/output"
	"github.com/tool-recommender-bot/redpen/pkg/validator"
	_ "github.com/tool-recommender-bot/redpen/pkg/validator/rules" // register built-in validators
)

// ValidatorInfo describes a registered validator.
type ValidatorInfo struct {
	Name        string   `json:"name"`
	Granularity string   `json:"granularity"`
	Description string   `json:"description"`
	Attributes  []string `json:"attributes,omitempty"`
	Properties  []string `json:"properties,omitempty"`
}

// ValidatorsJSONOutput is the JSON output structure for the validators listing.
type ValidatorsJSONOutput struct {
	Validators []ValidatorInfo `json:"validators"`
	Count      int             `json:"count"`
}

// NewValidatorsCommand creates the validators command.
func NewValidatorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validators",
		Short: "List available validators",
		Long: `List every registered validator with the level it inspects and the
attributes and properties it accepts in redpen.yaml.`,
		Example: `  # Show the table
  redpen validators

  # Output as JSON
  redpen validators -r json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return listValidators(cmdCtx.Renderer, validator.Default())
		},
	}
}

func validatorInfos(reg *validator.Registry) []ValidatorInfo {
	defs := reg.Definitions()
	infos := make([]ValidatorInfo, 0, len(defs))
	for _, def := range defs {
		granularity := validator.GranularityUnknown
		if g, err := validator.GranularityOf(def.New()); err == nil {
			granularity = g
		}
		infos = append(infos, ValidatorInfo{
			Name:        def.Name,
			Granularity: granularity.String(),
			Description: def.Description,
			Attributes:  def.Attributes,
			Properties:  def.Properties,
		})
	}
	return infos
}

func listValidators(r *output.Renderer, reg *validator.Registry) error {
	infos := validatorInfos(reg)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(ValidatorsJSONOutput{Validators: infos, Count: len(infos)})
	case output.ModePlain:
		for _, info := range infos {
			r.Println(info.Name)
		}
		return nil
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Validators"))
		r.Println("")
		validatorTable(r, infos).RenderMarkdown()
		r.Println("")
		return nil
	default:
		r.Println(r.Styles().Header1.Render("Validators"))
		validatorTable(r, infos).Render()
		r.Println(r.Styles().Muted.Render("Configure validators under 'validators:' in redpen.yaml"))
		return nil
	}
}

func validatorTable(r *output.Renderer, infos []ValidatorInfo) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Level", "Description", "Attributes", "Properties"})
	for _, info := range infos {
		t.AppendRow(table.Row{
			info.Name,
			info.Granularity,
			info.Description,
			strings.Join(info.Attributes, ", "),
			strings.Join(info.Properties, ", "),
		})
	}
	return t
}
