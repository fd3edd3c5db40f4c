// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

const notAvailable = "N/A"

// AppBuildInfo is the version, date and commit stamped into the notepad
// binary with -ldflags "-X main.buildVersion=...".
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Blank values are kept blank;
// [AppBuildInfo.String] renders them as N/A.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: strings.TrimSpace(buildVersion),
		buildDate:    strings.TrimSpace(buildDate),
		buildCommit:  strings.TrimSpace(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// String returns the three lines printed at startup.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s",
		orNA(a.buildVersion), orNA(a.buildDate), orNA(a.buildCommit))
}

func orNA(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}
