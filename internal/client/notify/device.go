package notify

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/client/session"
	"github.com/dmitrijs2005/gophgarage/internal/logging"
)

const registerTimeout = 10 * time.Second

type DeviceRegistrar interface {
	RegisterDevice(ctx context.Context, token string) error
}

// DeviceRegistration sends the device token to the server whenever a
// session starts. Attach OnSessionChange to a session.Context.
type DeviceRegistration struct {
	client DeviceRegistrar
	token  string
	logger logging.Logger

	wg sync.WaitGroup
}

func NewDeviceRegistration(c DeviceRegistrar, token string, logger logging.Logger) *DeviceRegistration {
	return &DeviceRegistration{client: c, token: token, logger: logger}
}

// OnSessionChange is a session.Listener. Registration runs in the
// background so that login is not delayed by the network.
func (d *DeviceRegistration) OnSessionChange(ctx context.Context, _, next *session.Session) {
	if next == nil || d.token == "" {
		return
	}
	user := next.UserID

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), registerTimeout)
		defer cancel()
		if err := d.client.RegisterDevice(rctx, d.token); err != nil {
			d.logger.Warn(rctx, "device registration failed", "user", user, "error", err)
			return
		}
		d.logger.Debug(rctx, "device registered", "user", user)
	}()
}

// Wait blocks until pending registrations finish.
func (d *DeviceRegistration) Wait() {
	d.wg.Wait()
}
