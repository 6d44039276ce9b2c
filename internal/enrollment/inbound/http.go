package inbound

import (
	"context"

	"github.com/widipratama/otpseal/internal/enrollment/usecase"
	"github.com/widipratama/otpseal/internal/pkg/router"
)

type uc interface {
	DecryptSeed(ctx context.Context, in usecase.DecryptSeedInput) (*usecase.DecryptSeedOutput, error)
	RequestSeed(ctx context.Context, in usecase.RequestSeedInput) (*usecase.RequestSeedOutput, error)

	GenerateCode(ctx context.Context) (*usecase.GenerateCodeOutput, error)
	VerifyCode(ctx context.Context, in usecase.VerifyCodeInput) (*usecase.VerifyCodeOutput, error)

	BuildProof(ctx context.Context, in usecase.BuildProofInput) (*usecase.BuildProofOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Seed lifecycle
	r.POST("/api/v1/enrollment/seed/request", end.RequestSeed)
	r.POST("/api/v1/enrollment/seed/decrypt", end.DecryptSeed)

	// One-time codes
	r.GET("/api/v1/enrollment/code", end.GenerateCode)
	r.POST("/api/v1/enrollment/code/verify", end.VerifyCode)

	// Possession proof
	r.POST("/api/v1/enrollment/proof", end.BuildProof)
}
