// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

const (
	unknownBuildValue = "N/A"

	// DevelopmentVersion is served by /api/version when neither the
	// configuration nor the linker flags name a version.
	DevelopmentVersion = "dev"
)

// AppBuildInfo carries the metadata injected into the server binary with
// -ldflags at build time. Empty values mean the binary was built without them.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

func (a AppBuildInfo) BuildVersion() string { return orUnknown(a.buildVersion) }
func (a AppBuildInfo) BuildDate() string    { return orUnknown(a.buildDate) }
func (a AppBuildInfo) BuildCommit() string  { return orUnknown(a.buildCommit) }

// ServedVersion picks the version reported to API clients. An explicitly
// configured version wins over the build version, and a binary built
// without -ldflags reports DevelopmentVersion.
func (a AppBuildInfo) ServedVersion(configured string) string {
	switch {
	case configured != "":
		return configured
	case a.buildVersion != "":
		return a.buildVersion
	default:
		return DevelopmentVersion
	}
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("version=%s date=%s commit=%s", a.BuildVersion(), a.BuildDate(), a.BuildCommit())
}

func orUnknown(v string) string {
	if v == "" {
		return unknownBuildValue
	}
	return v
}
