package backup

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/gjson"

	"github.com/opencode-ai/opencode-sync/pkg/types"
)

// supportedVersions is the range of export formats this importer reads.
const supportedVersions = "^1.0.0"

// checkVersion inspects the version field of a raw backup before it is
// decoded. It returns the version found ("" when absent).
func checkVersion(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("%w: not valid JSON", ErrInvalidBackup)
	}

	field := gjson.GetBytes(data, "version")
	if !field.Exists() {
		return "", nil
	}
	if field.Type != gjson.String {
		return "", fmt.Errorf("%w: version must be a string, got %s", ErrInvalidBackup, field.Raw)
	}

	v, err := semver.NewVersion(field.String())
	if err != nil {
		return field.String(), fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, field.String())
	}

	c, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return field.String(), err
	}
	if !c.Check(v) {
		return field.String(), fmt.Errorf("%w: %s (this tool reads %s, writes %s)",
			ErrUnsupportedVersion, v, supportedVersions, types.ExportVersion)
	}

	return field.String(), nil
}
