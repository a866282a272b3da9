// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package violation defines the structured failures produced by the [X.509] policy validators.
//
// Every failure is a value of one of the concrete types in this package. Each type carries
// only the parameters relevant to its message, reports a stable [Kind], and can be rendered
// in a supported language through [Translate] without parsing its default English message.
// Callers match violations with [errors.As] for a concrete type, or with [Is] for a kind.
//
// [X.509]: https://grokipedia.com/page/X.509
package violation
