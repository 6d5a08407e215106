package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"robo-advisor/internal/models"
)

type mockSNS struct {
	mock.Mock
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sns.PublishOutput)
	return out, args.Error(1)
}

func notification() models.RecommendationNotification {
	return models.RecommendationNotification{
		ID:         "5f1c7a54-0a4b-4b0e-9a43-3c1d1a8d6f11",
		Type:       models.NotificationTypeRecommendationFulfilled,
		Intent:     "recommendPortfolio",
		BotName:    "RoboAdvisor",
		FirstName:  "Sam",
		RiskLevel:  "high",
		Allocation: "20% bonds (AGG), 80% equities (SPY)",
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishRecommendation(t *testing.T) {
	api := &mockSNS{}
	topic := "arn:aws:sns:us-east-1:123456789012:recommendations"

	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		if *in.TopicArn != topic {
			return false
		}
		var decoded models.RecommendationNotification
		if err := json.Unmarshal([]byte(*in.Message), &decoded); err != nil {
			return false
		}
		return decoded.RiskLevel == "high" &&
			decoded.Allocation == "20% bonds (AGG), 80% equities (SPY)" &&
			*in.MessageAttributes["riskLevel"].StringValue == "high" &&
			*in.MessageAttributes["intent"].StringValue == "recommendPortfolio" &&
			*in.MessageAttributes["type"].DataType == "String"
	})).Return(&sns.PublishOutput{}, nil).Once()

	client := NewSNSClientWithAPI(api, topic)
	require.NoError(t, client.PublishRecommendation(context.Background(), notification()))
	api.AssertExpectations(t)
}

func TestPublishRecommendation_EmptyAttributeValue(t *testing.T) {
	api := &mockSNS{}
	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return *in.MessageAttributes["riskLevel"].StringValue == "unknown"
	})).Return(&sns.PublishOutput{}, nil).Once()

	n := notification()
	n.RiskLevel = ""
	require.NoError(t, NewSNSClientWithAPI(api, "arn").PublishRecommendation(context.Background(), n))
	api.AssertExpectations(t)
}

func TestPublishRecommendation_Error(t *testing.T) {
	api := &mockSNS{}
	api.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

	err := NewSNSClientWithAPI(api, "arn:topic").PublishRecommendation(context.Background(), notification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	assert.Contains(t, err.Error(), "arn:topic")
}
