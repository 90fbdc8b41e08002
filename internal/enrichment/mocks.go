package enrichment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/hereandnowai/customer-ltv-backend/internal/data"
)

type PredictorClientMock struct {
	mock.Mock
}

func (pc *PredictorClientMock) PredictValue(ctx context.Context, customer *data.Customer) (*Prediction, error) {
	args := pc.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Prediction), args.Error(1)
}

func (pc *PredictorClientMock) RetentionStrategies(ctx context.Context, value decimal.Decimal, segment data.CustomerSegment) ([]string, error) {
	args := pc.Called(ctx, value, segment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (pc *PredictorClientMock) MarketingIdeas(ctx context.Context, value decimal.Decimal, segment data.CustomerSegment) ([]string, error) {
	args := pc.Called(ctx, value, segment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (pc *PredictorClientMock) PredictorType() PredictorType {
	args := pc.Called()
	return args.Get(0).(PredictorType)
}

var _ PredictorClient = (*PredictorClientMock)(nil)

type testInterface interface {
	mock.TestingT
	Cleanup(func())
}

// NewPredictorClientMock creates a new instance of PredictorClientMock. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewPredictorClientMock(t testInterface) *PredictorClientMock {
	mock := &PredictorClientMock{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
