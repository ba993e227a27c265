package server

import (
	"fmt"
	"html/template"
	"net/http"
	"restrict_ip/internal/action"
	"restrict_ip/internal/config"
	"restrict_ip/internal/dataType"
	"restrict_ip/internal/utils"
	"time"
)

// CheckMain writes the auth answer for a decision: 200 when allowed, the 403 page when blocked
func CheckMain(w http.ResponseWriter, reqData dataType.RequestContext, decision action.Decision, newSession bool, cfg *config.MainConfig, logx *utils.LogxManager) {
	if !decision.Blocked {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			logx.LogError(reqData, fmt.Sprintf("Error writing response: %v", err), "CheckMain")
		}
		return
	}

	logx.LogInfo(reqData, "BLOCKED", string(decision.Reason))

	if newSession {
		setSessionCookie(w, cfg, reqData.SessionID)
	}

	tpl, err := template.ParseFiles(cfg.ErrorPage + "/403.html")
	if err != nil {
		logx.LogError(reqData, fmt.Sprintf("Error parsing template: %v", err), "CheckMain")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := struct {
		EdgeTag   string
		ConnectIP string
		Date      string
	}{
		EdgeTag:   cfg.NodeName,
		ConnectIP: reqData.ClientIP,
		Date:      time.Now().Format("2006-01-02 15:04:05"),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	if err = tpl.Execute(w, data); err != nil {
		logx.LogError(reqData, fmt.Sprintf("Error executing template: %v", err), "CheckMain")
	}
}

func setSessionCookie(w http.ResponseWriter, cfg *config.MainConfig, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
