package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the build version, overridden at link time. "main" marks a
// development build.
var Version = "main"

// SchemaVersion is the version of the YAML configuration file format this
// build understands.
const SchemaVersion = "1.0.0"

// CheckSchemaCompatibility checks whether a configuration file written for
// fileVersion can be read by this build.
//
// Compatibility Rules:
//   - An empty fileVersion is accepted (files may omit schema_version)
//   - If either version is "main" (development build), the check is skipped
//   - Major and minor versions must match exactly
//   - Patch versions can differ
func CheckSchemaCompatibility(fileVersion string) error {
	fileVersion = strings.TrimPrefix(fileVersion, "v")
	if fileVersion == "" || fileVersion == "main" || SchemaVersion == "main" {
		return nil
	}

	fileSemver, err := semver.NewVersion(fileVersion)
	if err != nil {
		return fmt.Errorf("invalid schema version '%s': %w", fileVersion, err)
	}

	supported, err := semver.NewVersion(SchemaVersion)
	if err != nil {
		return fmt.Errorf("invalid supported schema version '%s': %w", SchemaVersion, err)
	}

	if fileSemver.Major() != supported.Major() || fileSemver.Minor() != supported.Minor() {
		return fmt.Errorf("config schema version %s is not compatible with supported version %s (major and minor must match)",
			fileVersion, SchemaVersion)
	}

	return nil
}
