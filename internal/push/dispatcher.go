package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dukerupert/centavo/internal/duedate"
	"github.com/dukerupert/centavo/internal/model"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
)

const (
	// lookaheadDays bounds the reminder window: bills due today,
	// tomorrow, or in two days get a reminder.
	lookaheadDays = 2

	reminderTitle = "Bill Reminder"

	sendTimeout     = 10 * time.Second
	maxOwnerWorkers = 4
)

// ErrSweepInProgress is returned when Run is called while a previous
// sweep is still executing.
var ErrSweepInProgress = errors.New("sweep already running")

// BillSource yields every active fixed account across all users.
type BillSource interface {
	ListActive() ([]model.FixedAccount, error)
}

// SubscriptionSource yields a user's push endpoints and prunes dead ones.
type SubscriptionSource interface {
	ListByUser(userID int64) ([]model.PushSubscription, error)
	DeleteByEndpoint(endpoint string) error
}

// HistoryWriter records one logical notification per (bill, sweep).
type HistoryWriter interface {
	Create(userID int64, title, message string) (*model.Notification, error)
}

// Sender delivers a payload to one endpoint.
type Sender interface {
	Send(ctx context.Context, sub *model.PushSubscription, payload Payload) error
}

// Result summarizes one sweep for the caller's logs and monitoring.
type Result struct {
	BillsChecked      int `json:"bills_checked"`
	BillsSelected     int `json:"bills_selected"`
	NotificationsSent int `json:"notifications_sent"`
}

// Dispatcher runs due-date sweeps: load active bills, classify by
// days-until-due, group by owner, write history, and push to every
// endpoint. Delivery is at-least-once; running two sweeps on the same
// day duplicates reminders rather than dropping them.
type Dispatcher struct {
	bills   BillSource
	subs    SubscriptionSource
	history HistoryWriter
	sender  Sender
	logger  *slog.Logger

	now     func() time.Time
	running sync.Mutex
}

func NewDispatcher(bills BillSource, subs SubscriptionSource, history HistoryWriter, sender Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		bills:   bills,
		subs:    subs,
		history: history,
		sender:  sender,
		logger:  logger,
		now:     time.Now,
	}
}

type dueBill struct {
	acct model.FixedAccount
	days int
}

// Run executes one full sweep. Only a failure to enumerate active
// bills is fatal; endpoint-fetch and delivery failures are logged,
// counted, and never abort sibling work. Overlapping calls are
// rejected with ErrSweepInProgress.
func (d *Dispatcher) Run(ctx context.Context) (Result, error) {
	if !d.running.TryLock() {
		return Result{}, ErrSweepInProgress
	}
	defer d.running.Unlock()

	accounts, err := d.bills.ListActive()
	if err != nil {
		return Result{}, fmt.Errorf("load active accounts: %w", err)
	}

	today := d.now()
	var selected []dueBill
	for _, a := range accounts {
		days := duedate.DaysUntilDue(today, a.DueDay)
		if days <= lookaheadDays {
			selected = append(selected, dueBill{acct: a, days: days})
		}
	}

	// Partition by owner, keeping first-seen owner order.
	byOwner := make(map[int64][]dueBill)
	var owners []int64
	for _, b := range selected {
		if _, ok := byOwner[b.acct.UserID]; !ok {
			owners = append(owners, b.acct.UserID)
		}
		byOwner[b.acct.UserID] = append(byOwner[b.acct.UserID], b)
	}

	// Owners' data sets are disjoint, so process them in parallel.
	var sent atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxOwnerWorkers)
	for _, userID := range owners {
		bills := byOwner[userID]
		g.Go(func() error {
			d.notifyOwner(gctx, userID, bills, &sent)
			return nil
		})
	}
	g.Wait()

	res := Result{
		BillsChecked:      len(accounts),
		BillsSelected:     len(selected),
		NotificationsSent: int(sent.Load()),
	}
	d.logger.Info("sweep complete",
		"bills_checked", res.BillsChecked,
		"bills_selected", res.BillsSelected,
		"notifications_sent", res.NotificationsSent,
	)
	return res, ctx.Err()
}

func (d *Dispatcher) notifyOwner(ctx context.Context, userID int64, bills []dueBill, sent *atomic.Int64) {
	subs, err := d.subs.ListByUser(userID)
	if err != nil {
		d.logger.Error("list subscriptions", "user_id", userID, "error", err)
		return
	}
	if len(subs) == 0 {
		return
	}

	for _, b := range bills {
		if ctx.Err() != nil {
			return
		}

		msg := duedate.ReminderMessage(b.acct.Name, b.days)

		// History is written once per bill before any delivery attempt,
		// independent of how many endpoints succeed.
		if _, err := d.history.Create(userID, reminderTitle, msg); err != nil {
			d.logger.Error("save notification history",
				"user_id", userID, "account_id", b.acct.ID, "error", err)
		}

		payload := Payload{
			Title: reminderTitle,
			Body:  msg,
			URL:   "/accounts",
			Tag:   fmt.Sprintf("bill-%d", b.acct.ID),
		}

		for i := range subs {
			if err := d.deliver(ctx, &subs[i], payload); err != nil {
				if errors.Is(err, ErrExpired) {
					if derr := d.subs.DeleteByEndpoint(subs[i].Endpoint); derr != nil {
						d.logger.Error("prune expired subscription",
							"endpoint", subs[i].Endpoint, "error", derr)
					}
				} else {
					d.logger.Error("send reminder",
						"user_id", userID, "account_id", b.acct.ID, "error", err)
				}
				continue
			}
			sent.Add(1)
		}
	}
}

// deliver pushes to one endpoint with a per-send timeout and a short
// exponential backoff on transient failures. An expired subscription
// is permanent and not retried.
func (d *Dispatcher) deliver(ctx context.Context, sub *model.PushSubscription, payload Payload) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := d.sender.Send(ctx, sub, payload)
		if err == nil || errors.Is(err, ErrExpired) {
			return err
		}
		return retry.RetryableError(err)
	})
}
