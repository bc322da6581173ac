package securestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/casedesk/internal/common"
	"github.com/dmitrijs2005/casedesk/internal/cryptox"
)

const (
	// DeviceKeyFile holds the device secret followed by the derivation salt.
	DeviceKeyFile = "device.key"

	deviceSecretSize = 32
	deviceSaltSize   = 16
)

var ErrBadDeviceKey = errors.New("device key file is malformed")

// LoadDeviceKey returns the store key for dir, creating the key file with
// mode 0600 on first use. The file is bound to this installation; a copied
// database without it cannot be opened.
func LoadDeviceKey(dir string) ([]byte, error) {
	path := filepath.Join(dir, DeviceKeyFile)

	material, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		material, err = createDeviceKey(path)
	}
	if err != nil {
		return nil, common.Storage("device key", err)
	}

	if len(material) != deviceSecretSize+deviceSaltSize {
		return nil, ErrBadDeviceKey
	}
	defer common.WipeByteArray(material)

	return cryptox.DeriveKey(material[:deviceSecretSize], material[deviceSecretSize:]), nil
}

func createDeviceKey(path string) ([]byte, error) {
	material := common.GenerateRandByteArray(deviceSecretSize + deviceSaltSize)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		// another process won the race; use its key
		return os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(material); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return material, nil
}
