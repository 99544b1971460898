package scheduler

import (
	"context"

	"github.com/mkbkakwk/mynav/internal/logger"
	"github.com/mkbkakwk/mynav/internal/service"
)

// RemotePuller pulls the cloud copy of the dataset into memory on startup
type RemotePuller struct {
	service *service.Service
	logger  logger.Logger
}

// NewRemotePuller creates a new remote puller
func NewRemotePuller(svc *service.Service, log logger.Logger) *RemotePuller {
	return &RemotePuller{
		service: svc,
		logger:  log,
	}
}

// Pull fetches the remote dataset and merges it into the live one.
// Best effort: a failure leaves the local dataset serving.
func (rp *RemotePuller) Pull(ctx context.Context) error {
	rp.logger.Info("pulling remote dataset")

	if err := rp.service.PullRemote(ctx); err != nil {
		rp.logger.Warn("remote pull failed, keeping local dataset",
			logger.Error(err))
		return nil
	}

	return nil
}
