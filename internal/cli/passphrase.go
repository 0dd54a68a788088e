package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/crmsync/internal/iocli"
)

// PassphraseEnv - переменная окружения с парольной фразой синхронизации
const PassphraseEnv = "CRMSYNC_PASSPHRASE"

type Passphrases struct {
	FromFile string
	FromArgs string
	Prompt   bool // спросить в терминале, если других источников нет
}

// ReadPassphrase returns the sync passphrase with priority:
// 1. Environment variable CRMSYNC_PASSPHRASE
// 2. File from FromFile
// 3. FromArgs
// 4. Interactive prompt when Prompt is set
// An empty result means the config decides.
func ReadPassphrase(io iocli.IO, sources Passphrases) (string, error) {
	if env := os.Getenv(PassphraseEnv); env != "" {
		return env, nil
	}

	if sources.FromFile != "" {
		content, err := os.ReadFile(sources.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase file: %w", err)
		}
		// Убираем trailing newline/whitespace
		passphrase := strings.TrimSpace(string(content))
		if passphrase == "" {
			return "", fmt.Errorf("passphrase file is empty")
		}
		return passphrase, nil
	}

	if sources.FromArgs != "" {
		return sources.FromArgs, nil
	}

	if !sources.Prompt {
		return "", nil
	}
	passphrase, err := io.ReadPassword("Sync passphrase: ")
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase from stdin: %w", err)
	}
	if passphrase == "" {
		return "", fmt.Errorf("passphrase cannot be empty")
	}
	return passphrase, nil
}
