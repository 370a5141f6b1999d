package notification

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mfund-labs/mf-backend/config"
	"github.com/mfund-labs/mf-backend/internal/application"
	"github.com/mfund-labs/mf-backend/pkg/helpers"
	"github.com/mfund-labs/mf-backend/pkg/mailer"
	mailtpl "github.com/mfund-labs/mf-backend/pkg/mailer/templates"
)

const publishTimeout = 5 * time.Second

// Publisher puts a JSON message on the email queue. helpers.RabbitPublisher
// satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueNotifier enqueues welcome emails for cmd/email_worker. Publishing
// happens on its own goroutine and outlives the request that triggered it.
type QueueNotifier struct {
	pub    Publisher
	cfg    *config.Config
	logger *logrus.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

func NewQueueNotifier(pub Publisher, cfg *config.Config, logger *logrus.Logger) *QueueNotifier {
	return &QueueNotifier{pub: pub, cfg: cfg, logger: logger, now: time.Now}
}

func (n *QueueNotifier) NotifyWelcomeAsync(ctx context.Context, notice application.WelcomeNotice) {
	log := helpers.LoggerFrom(ctx, n.logger).WithField("email", notice.Email)
	job := mailer.EmailJob{
		To:       notice.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.cfg, notice.Name, notice.Email, notice.LoginType, notice.IsNewUser, mailtpl.WithTime(n.now())),
	}
	detached := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		c, cancel := context.WithTimeout(detached, publishTimeout)
		defer cancel()
		if err := n.pub.PublishJSON(c, job); err != nil {
			log.WithError(err).Error("failed to enqueue welcome email")
			return
		}
		log.WithField("new_user", notice.IsNewUser).Info("welcome email queued")
	}()
}

// Wait blocks until every in-flight publish has finished
func (n *QueueNotifier) Wait() {
	n.wg.Wait()
}

// LogNotifier only records the notice. Used when the queue is unavailable or
// MAIL_SEND_ENABLED is off.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (n LogNotifier) NotifyWelcomeAsync(ctx context.Context, notice application.WelcomeNotice) {
	helpers.LoggerFrom(ctx, n.Logger).WithFields(logrus.Fields{
		"email":      notice.Email,
		"login_type": notice.LoginType,
		"new_user":   notice.IsNewUser,
	}).Info("welcome email skipped, mail sending disabled")
}
