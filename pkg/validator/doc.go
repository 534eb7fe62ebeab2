// Package validator defines the contract every check implements, the
// diagnostics they produce and the registry that maps configured names to
// constructors.
//
// # Granularity
//
// A validator inspects exactly one kind of unit and says so by implementing
// one of SentenceValidator, ParagraphValidator or DocumentValidator. The
// engine walks each document in structural order and feeds every unit of
// that kind to the validator.
//
// # Registration
//
// Built-in validators register themselves from init functions:
//
//	import _ "github.com/tool-recommender-bot/redpen/pkg/validator/rules"
//
// Custom validators do the same with Register:
//
//	func init() {
//		validator.Register(validator.Definition{
//			Name:        "MyCheck",
//			Description: "Flags something.",
//			New:         func() validator.Validator { return &myCheck{} },
//		})
//	}
//
// Names are matched case-insensitively.
//
// # Configuration
//
// Before first use the engine calls Configure with the validator's
// attributes (string values) and properties (numeric values). Validators
// read only the keys they know and report missing or malformed ones as
// *ConfigError. Unreadable resources are reported as *ResourceError.
package validator
