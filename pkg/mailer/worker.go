package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/mfund-labs/mf-backend/pkg/mailer/templates"
)

// Outcome tells the consumer loop what to do with a delivery
type Outcome int

const (
	Ack     Outcome = iota
	Drop            // malformed, unrenderable, rejected by the provider or already retried
	Requeue         // first transient send failure
)

const sendTimeout = 15 * time.Second

// Worker turns queued EmailJobs into sent emails.
type Worker struct {
	Sender Sender
	Logger *logrus.Logger
}

func NewWorker(sender Sender, logger *logrus.Logger) *Worker {
	return &Worker{Sender: sender, Logger: logger}
}

// Handle decodes, renders and sends one queue message. A transient send
// failure is retried once; redelivered messages are dropped on failure.
func (w *Worker) Handle(ctx context.Context, body []byte, redelivered bool) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad email job payload")
		return Drop
	}
	log := w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template})
	if job.To == "" {
		log.Warn("email job without recipient")
		return Drop
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			log.WithError(err).Error("render failed")
			return Drop
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		if redelivered || IsPermanent(err) {
			log.WithError(err).WithField("redelivered", redelivered).Error("send failed, dropping")
			return Drop
		}
		log.WithError(err).Warn("send failed, requeueing once")
		return Requeue
	}
	log.Info("email sent")
	return Ack
}
