// Package ruleset loads field to rule mappings from YAML or JSON files and
// validates records with them.
//
// A rule set file has three sections; only rules is required:
//
//	locale: de
//	attributes:
//	  email: e-mail address
//	rules:
//	  name: required|string|max:255
//	  email: [required, "email:strict"]
//	  tags: [array, "max:5"]
//
// Each field takes a delimited string or a list of rule tokens. List
// entries are kept whole, so patterns containing "|" must be written as
// list items.
//
//	set, err := ruleset.Load("rules.yaml")
//	if err != nil { ... }
//	engine := validator.New(set.EngineOptions()...)
//	out := set.Validate(ctx, engine, record)
package ruleset
