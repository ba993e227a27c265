package server

import (
	"fmt"
	"html/template"
	"net/http"
	"restrict_ip/internal/dataType"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func newSessionID() string {
	return uuid.NewString()
}

// contactAddress turns the obfuscated "name[at]host" form back into an address
func contactAddress(mail string) string {
	return strings.ReplaceAll(mail, "[at]", "@")
}

func (s *Server) handleAccessDenied(w http.ResponseWriter, r *http.Request) {
	reqData := processRequestData(s.cfg, r)
	blocked := s.sessions.WasBlocked(reqData.SessionID)

	var contact string
	if policy := s.policies.Load(); policy != nil {
		contact = contactAddress(policy.MailAddress)
	}

	tpl, err := template.ParseFiles(s.cfg.ErrorPage + "/access_denied.html")
	if err != nil {
		s.logx.LogError(reqData, fmt.Sprintf("Error parsing template: %v", err), "handleAccessDenied")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := struct {
		Blocked     bool
		ContactMail string
		EdgeTag     string
		ConnectIP   string
		Date        string
	}{
		Blocked:     blocked,
		ContactMail: contact,
		EdgeTag:     s.cfg.NodeName,
		ConnectIP:   reqData.ClientIP,
		Date:        time.Now().Format("2006-01-02 15:04:05"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	if err = tpl.Execute(w, data); err != nil {
		s.logx.LogError(reqData, fmt.Sprintf("Error executing template: %v", err), "handleAccessDenied")
	}
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {

	var builder strings.Builder
	builder.WriteString("ok\n")
	builder.WriteString("version=")
	builder.WriteString(dataType.RestrictIPVersion)
	builder.WriteString("\n")
	builder.WriteString("time=")
	builder.WriteString(time.Now().Format(time.RFC3339))
	builder.WriteString("\n")
	builder.WriteString("ts=")
	builder.WriteString(strconv.FormatFloat(float64(time.Now().UnixNano())/1e9, 'f', 3, 64))
	builder.WriteString("\n")
	builder.WriteString("node=")
	builder.WriteString(s.cfg.NodeName)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(builder.String())); err != nil {
		s.logger.Warn("Error writing health check response")
	}
}
