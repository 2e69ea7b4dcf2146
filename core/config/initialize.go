package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const hostKeyBits = 2048

// Initialize writes a commented default configuration and a fresh host
// key under configDir. Existing files are left alone so the operation
// is safe to repeat.
func Initialize(fs afero.Fs, configDir string, logger *log.Logger) error {
	if err := fs.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("couldn't create config directory %q: %w", configDir, err)
	}

	configPath := filepath.Join(configDir, ConfigurationName)
	if err := writeIfMissing(fs, configPath, defaultConfigData, 0600, logger); err != nil {
		return err
	}

	keyPath := filepath.Join(configDir, HostKeyName)
	exists, err := afero.Exists(fs, keyPath)
	if err != nil {
		return err
	}
	if exists {
		logger.Printf("host key %q already exists, skipping", keyPath)
		return nil
	}

	logger.Printf("generating %d bit RSA host key", hostKeyBits)
	keyPEM, err := generateHostKey()
	if err != nil {
		return fmt.Errorf("couldn't generate host key: %w", err)
	}

	return writeIfMissing(fs, keyPath, keyPEM, 0600, logger)
}

func writeIfMissing(fs afero.Fs, path string, contents []byte, mode os.FileMode, logger *log.Logger) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists {
		logger.Printf("%q already exists, skipping", path)
		return nil
	}

	if err := afero.WriteFile(fs, path, contents, mode); err != nil {
		return fmt.Errorf("couldn't write %q: %w", path, err)
	}
	logger.Printf("wrote %q", path)
	return nil
}

func generateHostKey() ([]byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, hostKeyBits)
	if err != nil {
		return nil, err
	}

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	return pem.EncodeToMemory(block), nil
}
