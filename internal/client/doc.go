// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the notepad application runtime.
//
// It runs the terminal shell over the credential vault and releases the
// persistent store when the shell exits.
package client
