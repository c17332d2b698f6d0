package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"voterroll/internal/selection/store"
	"voterroll/internal/selection/store/mocks"
	"voterroll/pkg/platform/circuit"
)

var errRedisDown = errors.New("dial tcp: connection refused")

type ResilientStoreSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	primary *mocks.MockStore
	breaker *circuit.Breaker
	store   *store.ResilientStore
	ctx     context.Context
}

func TestResilientStoreSuite(t *testing.T) {
	suite.Run(t, new(ResilientStoreSuite))
}

func (s *ResilientStoreSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.primary = mocks.NewMockStore(s.ctrl)
	s.breaker = circuit.New("selection_store", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	s.store = store.NewResilientStore(s.primary, store.WithBreaker(s.breaker))
	s.ctx = context.Background()
}

func (s *ResilientStoreSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ResilientStoreSuite) TestSave_PassesThroughWhileClosed() {
	s.primary.EXPECT().Save(gomock.Any(), "worker-1", []string{"ABC1234567"}).Return(nil)
	s.NoError(s.store.Save(s.ctx, "worker-1", []string{"ABC1234567"}))

	s.primary.EXPECT().Save(gomock.Any(), "worker-1", []string{"DEF2345678"}).Return(errRedisDown)
	s.ErrorIs(s.store.Save(s.ctx, "worker-1", []string{"DEF2345678"}), errRedisDown)
	s.False(s.breaker.Open())
}

func (s *ResilientStoreSuite) TestSave_SwallowsErrorsOnceOpen() {
	s.primary.EXPECT().Save(gomock.Any(), "worker-1", gomock.Any()).Return(errRedisDown).Times(2)

	s.Error(s.store.Save(s.ctx, "worker-1", []string{"ABC1234567"}))
	s.NoError(s.store.Save(s.ctx, "worker-1", []string{"ABC1234567", "DEF2345678"}))
	s.True(s.breaker.Open())
}

func (s *ResilientStoreSuite) TestLoad_FallsBackToLocalCopyWhenOpen() {
	gomock.InOrder(
		s.primary.EXPECT().Save(gomock.Any(), "worker-1", gomock.Any()).Return(nil),
		s.primary.EXPECT().Load(gomock.Any(), "worker-1").Return(nil, errRedisDown).Times(2),
	)
	s.Require().NoError(s.store.Save(s.ctx, "worker-1", []string{"ABC1234567"}))

	_, err := s.store.Load(s.ctx, "worker-1")
	s.ErrorIs(err, errRedisDown)

	ids, err := s.store.Load(s.ctx, "worker-1")
	s.Require().NoError(err)
	s.Equal([]string{"ABC1234567"}, ids)
}

func (s *ResilientStoreSuite) TestLoad_OpenWithoutLocalCopyReturnsError() {
	s.primary.EXPECT().Load(gomock.Any(), "worker-2").Return(nil, errRedisDown).Times(2)

	_, _ = s.store.Load(s.ctx, "worker-2")
	_, err := s.store.Load(s.ctx, "worker-2")
	s.ErrorIs(err, errRedisDown)
}

func (s *ResilientStoreSuite) TestLoad_NotFoundIsNotAFailure() {
	s.primary.EXPECT().Load(gomock.Any(), "worker-3").Return(nil, store.ErrNotFound).Times(3)

	for range 3 {
		_, err := s.store.Load(s.ctx, "worker-3")
		s.ErrorIs(err, store.ErrNotFound)
	}
	s.False(s.breaker.Open())
}

func (s *ResilientStoreSuite) TestRecoveryClosesBreaker() {
	gomock.InOrder(
		s.primary.EXPECT().Save(gomock.Any(), "worker-1", gomock.Any()).Return(errRedisDown).Times(2),
		s.primary.EXPECT().Save(gomock.Any(), "worker-1", gomock.Any()).Return(nil),
	)
	_ = s.store.Save(s.ctx, "worker-1", []string{"ABC1234567"})
	_ = s.store.Save(s.ctx, "worker-1", []string{"ABC1234567"})
	s.True(s.breaker.Open())

	s.NoError(s.store.Save(s.ctx, "worker-1", []string{"ABC1234567"}))
	s.False(s.breaker.Open())
}
