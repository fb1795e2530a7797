package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/di"
	"github.com/jeremyyuAWS/lyzr-copilot/internal/ports"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run reads one message, analyzes it and prints the results
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	emailFilter ports.EmailFilter,
	analyzer core.Analyzer,
) error {
	defer logger.Sync()

	// Read message from file or stdin
	var emailReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			logger.Error("Failed to open input file", zap.Error(err), zap.String("file", flags.InputFile))
			return err
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading message from file", zap.String("file", flags.InputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	email, err := readEmail(emailReader)
	if err != nil {
		logger.Error("Failed to read message", zap.Error(err))
		return err
	}

	if _, err := emailFilter.ProcessEmail(context.Background(), email); err != nil {
		return err
	}

	// Close any resources that need closing
	if closer, ok := analyzer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close analyzer", zap.Error(err))
		}
	}

	return nil
}

// readEmail parses the input as an RFC 5322 message, falling back to treating
// the whole input as a plain-text body.
func readEmail(r io.Reader) (*core.InboundEmail, error) {
	raw, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}

	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	if err != nil {
		// Plain text, not a full message
		return &core.InboundEmail{Body: string(raw), Raw: raw}, nil
	}

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, err
	}

	email := &core.InboundEmail{
		From:    msg.Header.Get("From"),
		Subject: msg.Header.Get("Subject"),
		Body:    string(bodyBytes),
		Headers: msg.Header,
		Raw:     raw,
	}
	if to := msg.Header.Get("To"); to != "" {
		for _, addr := range strings.Split(to, ",") {
			email.To = append(email.To, strings.TrimSpace(addr))
		}
	}

	return email, nil
}
