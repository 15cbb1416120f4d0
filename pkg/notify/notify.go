package notify

import (
	"fyne.io/fyne/v2"

	"skihide/pkg/logger"
)

const appTitle = "SkiHide"

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

func (t NotificationType) String() string {
	if t == Error {
		return "error"
	}
	return "info"
}

// Sender delivers a desktop notification. fyne.App satisfies it.
type Sender interface {
	SendNotification(*fyne.Notification)
}

// NotifyService handles desktop notifications
type NotifyService struct {
	log    *logger.Logger
	sender Sender
}

// NewNotifyService creates a new notification service. A nil sender (CLI
// mode, headless tests) sends everything to the log instead.
func NewNotifyService(sender Sender, log *logger.Logger) *NotifyService {
	return &NotifyService{
		log:    log,
		sender: sender,
	}
}

// Show displays a notification of the specified type
func (n *NotifyService) Show(message string, nType NotificationType) {
	title := appTitle
	if nType == Error {
		title += " Error"
	}

	n.log.Debug("Sending notification", "type", nType, "message", message)
	if n.sender == nil {
		n.writeToLog(message, nType)
		return
	}
	n.sender.SendNotification(fyne.NewNotification(title, message))
}

func (n *NotifyService) writeToLog(message string, nType NotificationType) {
	if nType == Error {
		n.log.Warn("Notification", "message", message)
		return
	}
	n.log.Info("Notification", "message", message)
}
