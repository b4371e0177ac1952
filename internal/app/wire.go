package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/op/go-logging.v1"

	"kdcsim/internal/config"
	"kdcsim/internal/crypto"
	"kdcsim/internal/domain"
	klog "kdcsim/internal/log"
	"kdcsim/internal/metrics"
	"kdcsim/internal/services/kdc"
	"kdcsim/internal/services/participant"
	"kdcsim/internal/store"
	"kdcsim/internal/transport"
)

// Wire bundles the KDC, its channel and the provisioned participants.
type Wire struct {
	Config   *config.Config
	Log      *klog.Backend
	Registry *store.KeyRegistry
	KDC      *kdc.Service
	Channel  *transport.Local
	Metrics  *metrics.Prometheus
	Gatherer prometheus.Gatherer

	participants map[domain.Identity]*participant.Participant
	log          *logging.Logger
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg *config.Config) (*Wire, error) {
	backend, err := klog.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		return nil, err
	}
	return NewWireWithBackend(cfg, backend)
}

// NewWireWithBackend is NewWire with a caller-supplied logging backend.
func NewWireWithBackend(cfg *config.Config, backend *klog.Backend) (*Wire, error) {
	cipher := crypto.NewAEAD()
	promReg := prometheus.NewRegistry()

	w := &Wire{
		Config:       cfg,
		Log:          backend,
		Registry:     store.NewKeyRegistry(backend.GetLogger("registry")),
		Metrics:      metrics.New(promReg),
		Gatherer:     promReg,
		participants: make(map[domain.Identity]*participant.Participant),
		log:          backend.GetLogger("app"),
	}
	w.KDC = kdc.New(w.Registry, cipher, backend.GetLogger("kdc"), kdc.Options{
		ValidityWindow: cfg.KDC.ValidityWindow,
		MaxRequestSkew: cfg.KDC.MaxRequestSkew,
		Metrics:        w.Metrics,
	})
	w.Channel = transport.NewLocal(w.KDC)

	// Registration happens once, before any traffic; each long-term key is
	// handed straight to its participant.
	for _, name := range cfg.Demo.Participants {
		id := domain.Identity(name)
		key, err := w.Registry.Register(id)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.participants[id] = participant.New(id, key, cipher,
			backend.GetLogger("participant/"+name),
			participant.Options{RejectExpiredGrants: cfg.Participant.RejectExpiredGrants})
	}
	return w, nil
}

// Participant returns the provisioned participant named id.
func (w *Wire) Participant(id domain.Identity) (*participant.Participant, error) {
	p, ok := w.participants[id]
	if !ok {
		return nil, fmt.Errorf("participant %q: %w", id, domain.ErrUnknownIdentity)
	}
	return p, nil
}

// Exchange runs one key exchange initiated by from for to, delivering each
// grant to its holder.
func (w *Wire) Exchange(ctx context.Context, from, to domain.Identity) error {
	sender, err := w.Participant(from)
	if err != nil {
		return err
	}
	pair, err := sender.SendRequest(ctx, w.Channel, to)
	if err != nil {
		return err
	}
	receiver, err := w.Participant(to)
	if err != nil {
		return err
	}
	if err := sender.ReceiveSessionKey(pair.ForSender); err != nil {
		return err
	}
	return receiver.ReceiveSessionKey(pair.ForReceiver)
}

// Send has from seal message for its current peer and to open it.
func (w *Wire) Send(from, to domain.Identity, message string) (string, error) {
	sender, err := w.Participant(from)
	if err != nil {
		return "", err
	}
	receiver, err := w.Participant(to)
	if err != nil {
		return "", err
	}
	ct, err := sender.SendMessage(message)
	if err != nil {
		return "", err
	}
	return receiver.ReceiveMessage(ct)
}

// Close drops every participant session and wipes the registry.
func (w *Wire) Close() {
	for _, p := range w.participants {
		p.Reset()
	}
	w.Registry.Wipe()
	w.log.Debug("Key material wiped.")
}
