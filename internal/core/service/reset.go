package service

import "photoedit/internal/core/domain"

type chainApplier interface {
	ApplyChain(chain *domain.Chain) error
}

// ResetController restores a chain to neutral and repaints.
type ResetController struct{}

// Reset always repaints, even for a chain that is already neutral, so the surface is guaranteed to match the
// original pixels afterwards.
func (ResetController) Reset(chain *domain.Chain, renderer chainApplier) error {
	chain.Reset()
	return renderer.ApplyChain(chain)
}
