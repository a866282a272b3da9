// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-style helpers for naming the running binary.
//
//	rootCmd := &cobra.Command{
//	    Use: posix.ExecutableName("x509-validator"),
//	}
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
