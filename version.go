package walletapp

import (
	"encoding/binary"
	"fmt"
)

const versionLength = 9

// VersionInfo is the payload of GetVersion.
type VersionInfo struct {
	AppMode  uint8  `yaml:"mode"`
	Major    uint8  `yaml:"major"`
	Minor    uint8  `yaml:"minor"`
	Patch    uint8  `yaml:"patch"`
	Locked   bool   `yaml:"locked"`
	TargetID uint32 `yaml:"target_id"`
}

func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bytes encodes mode, major, minor, patch, locked and the big-endian target id.
func (v VersionInfo) Bytes() []byte {

	out := make([]byte, versionLength)
	out[0] = v.AppMode
	out[1] = v.Major
	out[2] = v.Minor
	out[3] = v.Patch

	if v.Locked {
		out[4] = 1
	}

	binary.BigEndian.PutUint32(out[5:], v.TargetID)

	return out

}

func ParseVersionInfo(data []byte) (VersionInfo, error) {

	if len(data) != versionLength {
		return VersionInfo{}, fmt.Errorf("version payload of %d bytes, expected %d", len(data), versionLength)
	}

	return VersionInfo{
		AppMode:  data[0],
		Major:    data[1],
		Minor:    data[2],
		Patch:    data[3],
		Locked:   data[4] != 0,
		TargetID: binary.BigEndian.Uint32(data[5:]),
	}, nil

}

func (app *App) handleGetVersion(Command) ([]byte, error) {
	return app.version.Bytes(), nil
}
