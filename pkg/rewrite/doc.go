// Package rewrite resolves configuration, builds requests, and runs the
// rewrite of a text selection through the model API.
//
// The pieces, leaf first:
//   - [Session] holds the in-process model override.
//   - [Resolver] computes an [EffectiveConfig] from the override, the persisted
//     settings, and [DefaultModel], in that order of precedence.
//   - [Assemble] turns a config and a [Request] into a prompt payload.
//   - [Catalog] lists the models able to rewrite text.
//   - [Selector] applies a chosen model to the session and, best effort, to
//     the persisted settings.
//   - [SelectionFlow] ties the catalog, a [Chooser], and the selector together.
//   - [Orchestrator] runs one rewrite end to end.
//
// Terminal failures are reported as [*Error] values carrying a [Kind].
package rewrite

// DefaultModel is used when neither the session nor the settings name a model.
const DefaultModel = "gemini-2.0-flash-001"

// DeprecatedModel is a retired model id. Rewrites refuse to run with it and
// ask the user to pick another model instead of silently substituting one.
const DeprecatedModel = "gemini-pro"
