// Package redpen runs a configured set of validators over a collection of
// documents.
//
// A RedPen is built once per configuration. New resolves every configured
// validator through the registry and configures it, failing before any
// document is touched if a name is unknown or a setting is bad:
//
//	rp, err := redpen.New(cfg, redpen.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	results, err := rp.Validate(ctx, docs)
//
// Diagnostics for each document are grouped by validator in configured
// order and, within a validator, follow the document's structure: section
// headings, then paragraph sentences, section by section.
package redpen
