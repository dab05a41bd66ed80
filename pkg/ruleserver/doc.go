// Package ruleserver exposes rule sets over HTTP.
//
// Routes:
//
//	GET  /healthz                    liveness probe
//	GET  /readyz                     readiness probe
//	GET  /rulesets                   names of the loaded rule sets
//	GET  /rulesets/{name}            locale, attribute names and rule tokens of one set
//	POST /rulesets/{name}/validate   validate a JSON object against the set
//
// Responses share one envelope: {"data": ...} on success and
// {"error": {"code", "message", "details"}} otherwise. A rejected record
// answers 422 with the failure messages per field in "details".
//
// The message locale is taken from the "locale" query parameter, then from
// Accept-Language, then from the rule set file, then from the engine.
package ruleserver
