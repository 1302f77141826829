// internal/request/notify.go
//
// Prepared notification.
//
// Context
// -------
// Listeners observe a fully-resolved request just before it freezes; the
// request is still writable at notification time, so a listener may
// override content, template, or redirect intent.  This is the designed
// extension point for customizing a resolved-but-not-yet-rendered
// request.
//
// Registration is explicit and instance-scoped — the engine builder owns
// one Notifier — never ambient or package-global.  Listeners run
// synchronously in registration order; the first failure stops the walk
// and propagates, so listeners must not assume later ones ran.
package request

// Listener observes a prepared, still-writable request.
type Listener func(*PublishedRequest) error

// Notifier holds an ordered listener list.  Not safe for concurrent
// Subscribe; register everything during boot.
type Notifier struct {
	listeners []Listener
}

// NewNotifier returns an empty Notifier.
func NewNotifier() *Notifier { return &Notifier{} }

// Subscribe appends l to the notification order.
func (n *Notifier) Subscribe(l Listener) {
	n.listeners = append(n.listeners, l)
}

// notify walks the listeners in order, failing fast.  A nil Notifier
// notifies nobody.
func (n *Notifier) notify(r *PublishedRequest) error {
	if n == nil {
		return nil
	}
	for _, l := range n.listeners {
		if err := l(r); err != nil {
			return err
		}
	}
	return nil
}
