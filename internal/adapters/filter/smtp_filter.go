package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

// SmtpFilter is an SMTP proxy that annotates messages with triage headers
// and relays them to the downstream MTA.
type SmtpFilter struct {
	service          *core.TriageService
	logger           *zap.Logger
	listenAddr       string
	server           *smtp.Server
	intentHeader     string
	routingHeader    string
	urgencyHeader    string
	confidenceHeader string
	relayAddr        string
	relayPort        int
	relayEnabled     bool
	subjectPrefix    string
	modifySubject    bool
}

// NewSmtpFilter creates a new SMTP triage filter
func NewSmtpFilter(
	service *core.TriageService,
	logger *zap.Logger,
	listenAddr string,
	intentHeader string,
	routingHeader string,
	urgencyHeader string,
	confidenceHeader string,
	relayAddr string,
	relayPort int,
	relayEnabled bool,
	subjectPrefix string,
	modifySubject bool,
) *SmtpFilter {
	if subjectPrefix == "" && modifySubject {
		subjectPrefix = "[URGENT] "
	}

	return &SmtpFilter{
		service:          service,
		logger:           logger,
		listenAddr:       listenAddr,
		intentHeader:     intentHeader,
		routingHeader:    routingHeader,
		urgencyHeader:    urgencyHeader,
		confidenceHeader: confidenceHeader,
		relayAddr:        relayAddr,
		relayPort:        relayPort,
		relayEnabled:     relayEnabled,
		subjectPrefix:    subjectPrefix,
		modifySubject:    modifySubject,
	}
}

// Start starts the SMTP filter service
func (f *SmtpFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP filter starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP filter service
func (f *SmtpFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail analyzes a single message without relaying it
func (f *SmtpFilter) ProcessEmail(ctx context.Context, email *core.InboundEmail) (*core.AgentResponse, error) {
	return f.service.Analyze(ctx, email.Text())
}

// relay sends the annotated email to the downstream MTA using go-smtp
func (f *SmtpFilter) relay(sender string, recipients []string, emailData []byte) error {
	relayAddr := fmt.Sprintf("%s:%d", f.relayAddr, f.relayPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", relayAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
		} else {
			recipientOK = true
		}
	}

	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}

	if _, err := wc.Write(emailData); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}

	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *SmtpFilter
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		filter:     b.filter,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *SmtpFilter
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for the filter)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data annotates the message with triage headers and relays it
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.filter.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	textContent, err := extractTextFromMessage(msg)
	if err != nil {
		s.filter.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}

	email := &core.InboundEmail{
		From:    s.sender,
		To:      s.recipients,
		Subject: msg.Header.Get("Subject"),
		Body:    textContent,
		Headers: msg.Header,
		Raw:     rawData,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, analysisErr := s.filter.service.Analyze(ctx, email.Text())
	if analysisErr != nil {
		s.filter.logger.Error("Failed to analyze email",
			zap.Error(analysisErr),
			zap.String("sender", email.From))
	}

	var modifiedEmail bytes.Buffer

	urgency := ""
	if analysisErr == nil {
		if resp.EmailAnalysis != nil {
			urgency = resp.EmailAnalysis.Urgency
		}
		fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", s.filter.intentHeader, resp.Intent)
		fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", s.filter.routingHeader, resp.Routing)
		if urgency != "" {
			fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", s.filter.urgencyHeader, urgency)
		}
		fmt.Fprintf(&modifiedEmail, "%s: %.4f\r\n", s.filter.confidenceHeader, resp.Confidence)
	} else {
		fmt.Fprintf(&modifiedEmail, "X-Triage-Error: %s\r\n", analysisErr.Error())
	}

	isRush := urgency == core.UrgencyHigh || urgency == core.UrgencyCritical
	if isRush && s.filter.modifySubject && s.filter.subjectPrefix != "" {
		originalSubject := msg.Header.Get("Subject")
		decodedSubject, err := decodeEncodedHeader(originalSubject)
		if err != nil {
			decodedSubject = originalSubject
		}

		if !strings.HasPrefix(decodedSubject, s.filter.subjectPrefix) {
			fmt.Fprintf(&modifiedEmail, "Subject: %s%s\r\n", s.filter.subjectPrefix, decodedSubject)
			writeHeaders(&modifiedEmail, msg.Header, "Subject")
		} else {
			writeHeaders(&modifiedEmail, msg.Header, "")
		}
	} else {
		writeHeaders(&modifiedEmail, msg.Header, "")
	}

	fmt.Fprintf(&modifiedEmail, "\r\n")
	modifiedEmail.Write(messageBody(rawData, msg))

	if s.filter.relayEnabled {
		if err := s.filter.relay(s.sender, s.recipients, modifiedEmail.Bytes()); err != nil {
			s.filter.logger.Error("Failed to relay email",
				zap.Error(err),
				zap.String("sender", email.From))
			return err
		}
	}

	if analysisErr == nil {
		s.filter.logger.Info("Processed email",
			zap.String("from", email.From),
			zap.String("intent", resp.Intent),
			zap.String("routing", resp.Routing),
			zap.Float64("confidence", resp.Confidence))
	}

	return nil
}

// Logout handles SMTP logout
func (s *smtpSession) Logout() error {
	return nil
}

// writeHeaders writes all headers except the one named in skip
func writeHeaders(w *bytes.Buffer, headers mail.Header, skip string) {
	for key, values := range headers {
		if skip != "" && strings.EqualFold(key, skip) {
			continue
		}
		for _, value := range values {
			fmt.Fprintf(w, "%s: %s\r\n", key, value)
		}
	}
}

// messageBody returns the raw body bytes, preserving MIME parts and
// attachments
func messageBody(rawData []byte, msg *mail.Message) []byte {
	if idx := bytes.Index(rawData, []byte("\r\n\r\n")); idx != -1 {
		return rawData[idx+4:]
	}
	if idx := bytes.Index(rawData, []byte("\n\n")); idx != -1 {
		return rawData[idx+2:]
	}
	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil
	}
	return bodyBytes
}
