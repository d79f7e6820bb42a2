// internal/handlers/review_handler_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go_5_flashcard_keep/internal/handlers"
	"go_5_flashcard_keep/internal/middleware"
	"go_5_flashcard_keep/internal/model"
	"go_5_flashcard_keep/internal/service/mocks"
)

func feedbackPtr(s string) *string { return &s }
func qualityPtr(i int) *int        { return &i }

func TestReviewHandler_GetReviewCards(t *testing.T) {
	// --- セットアップ ---
	currentTestTenantID := uuid.New()

	mockReviewService := mocks.NewReviewService(t)
	reviewHandler := handlers.NewReviewHandler(mockReviewService, nil)
	router := chi.NewRouter()
	router.Use(middleware.DevTenantContextMiddleware)
	router.Get("/api/v1/reviews", reviewHandler.GetReviewCards)
	// ------------------

	dueReviews := []model.ReviewCardResponse{
		{CardID: uuid.New(), Question: "Q1", Answer: "A1", Interval: 1, Ease: 2.5, NextReview: time.Now()},
		{CardID: uuid.New(), Question: "Q2", Answer: "A2", Interval: 3, Ease: 2.3, NextReview: time.Now()},
	}

	tests := []struct {
		name           string
		url            string
		tenantID       *uuid.UUID
		setupMock      func()
		expectedStatus int
		expectedCount  int
	}{
		{
			name:     "Success - List due cards",
			tenantID: &currentTestTenantID,
			setupMock: func() {
				mockReviewService.On("GetReviewCards", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, mock.AnythingOfType("time.Time")).
					Return(dueReviews, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:     "Success - No due cards returns []",
			tenantID: &currentTestTenantID,
			setupMock: func() {
				mockReviewService.On("GetReviewCards", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, mock.AnythingOfType("time.Time")).
					Return(nil, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:     "Success - Explicit as_of date",
			url:      "/api/v1/reviews?as_of=2026-09-01",
			tenantID: &currentTestTenantID,
			setupMock: func() {
				wantAsOf := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
				mockReviewService.On("GetReviewCards", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, wantAsOf).
					Return(dueReviews, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Fail - Invalid as_of format",
			url:            "/api/v1/reviews?as_of=09-01-2026",
			tenantID:       &currentTestTenantID,
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Fail - Missing tenant ID",
			tenantID:       nil,
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusForbidden,
		},
		{
			name:     "Fail - Service returns error",
			tenantID: &currentTestTenantID,
			setupMock: func() {
				mockReviewService.On("GetReviewCards", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, mock.AnythingOfType("time.Time")).
					Return(nil, model.ErrInternalServer).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()
			url := tc.url
			if url == "" {
				url = "/api/v1/reviews"
			}
			req := createRequest(t, "GET", url, nil, tc.tenantID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp []model.ReviewCardResponse
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tc.expectedCount)
			}
			mockReviewService.AssertExpectations(t)
		})
	}
}

func TestReviewHandler_GetReviewCardsCount(t *testing.T) {
	// --- セットアップ ---
	currentTestTenantID := uuid.New()

	mockReviewService := mocks.NewReviewService(t)
	reviewHandler := handlers.NewReviewHandler(mockReviewService, nil)
	router := chi.NewRouter()
	router.Use(middleware.DevTenantContextMiddleware)
	router.Get("/api/v1/reviews/count", reviewHandler.GetReviewCardsCount)
	// ------------------

	t.Run("Success - Returns count JSON", func(t *testing.T) {
		mockReviewService.On("GetReviewCardsCount", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, mock.AnythingOfType("time.Time")).
			Return(int64(12), nil).Once()

		req := createRequest(t, "GET", "/api/v1/reviews/count", nil, &currentTestTenantID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]int64
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.EqualValues(t, 12, resp["count"])
		mockReviewService.AssertExpectations(t)
	})

	t.Run("Fail - Missing tenant ID", func(t *testing.T) {
		req := createRequest(t, "GET", "/api/v1/reviews/count", nil, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestReviewHandler_SubmitReview(t *testing.T) {
	// --- セットアップ ---
	currentTestTenantID := uuid.New()
	targetCardID := uuid.New()

	mockReviewService := mocks.NewReviewService(t)
	reviewHandler := handlers.NewReviewHandler(mockReviewService, nil)
	router := chi.NewRouter()
	router.Use(middleware.DevTenantContextMiddleware)
	router.Post("/api/v1/reviews/{card_id}", reviewHandler.SubmitReview)
	// ------------------

	// 採点後のカード (Serviceから返る想定)
	reviewedCard := &model.Card{
		CardID:     targetCardID,
		TenantID:   currentTestTenantID,
		Question:   "Q",
		Answer:     "A",
		Interval:   5,
		Ease:       2.5,
		NextReview: time.Now().AddDate(0, 0, 5),
	}

	tests := []struct {
		name           string
		tenantID       *uuid.UUID
		cardIDParam    string
		body           interface{}
		setupMock      func()
		expectedStatus int
	}{
		{
			name:        "Success - Submit feedback",
			tenantID:    &currentTestTenantID,
			cardIDParam: targetCardID.String(),
			body:        model.SubmitReviewRequest{Feedback: feedbackPtr("easy")},
			setupMock: func() {
				mockReviewService.On("SubmitReview", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, targetCardID, mock.AnythingOfType("*model.SubmitReviewRequest")).
					Return(reviewedCard, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Success - Submit quality",
			tenantID:    &currentTestTenantID,
			cardIDParam: targetCardID.String(),
			body:        model.SubmitReviewRequest{Quality: qualityPtr(4)},
			setupMock: func() {
				mockReviewService.On("SubmitReview", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, targetCardID, mock.AnythingOfType("*model.SubmitReviewRequest")).
					Return(reviewedCard, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Fail - Invalid feedback value rejected by validation",
			tenantID:    &currentTestTenantID,
			cardIDParam: targetCardID.String(),
			body:        model.SubmitReviewRequest{Feedback: feedbackPtr("perfect")},
			setupMock:   func() { /* oneofバリデーションで弾かれ、Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Fail - Both feedback and quality",
			tenantID:    &currentTestTenantID,
			cardIDParam: targetCardID.String(),
			body:        model.SubmitReviewRequest{Feedback: feedbackPtr("easy"), Quality: qualityPtr(5)},
			setupMock: func() {
				// 相関チェックはService側の責務
				mockReviewService.On("SubmitReview", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, targetCardID, mock.AnythingOfType("*model.SubmitReviewRequest")).
					Return(nil, model.NewAppError("INVALID_REVIEW_SIGNAL", "feedbackとqualityは同時に指定できません。", "", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Fail - Quality out of range",
			tenantID:    &currentTestTenantID,
			cardIDParam: targetCardID.String(),
			body:        model.SubmitReviewRequest{Quality: qualityPtr(6)},
			setupMock: func() {
				mockReviewService.On("SubmitReview", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, targetCardID, mock.AnythingOfType("*model.SubmitReviewRequest")).
					Return(nil, model.NewAppError("INVALID_QUALITY", "qualityは0〜5の整数で指定してください。", "quality", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Fail - Invalid UUID format",
			tenantID:       &currentTestTenantID,
			cardIDParam:    "not-a-uuid",
			body:           model.SubmitReviewRequest{Feedback: feedbackPtr("easy")},
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Fail - Card not found",
			tenantID:    &currentTestTenantID,
			cardIDParam: uuid.New().String(),
			body:        model.SubmitReviewRequest{Feedback: feedbackPtr("easy")},
			setupMock: func() {
				mockReviewService.On("SubmitReview", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("*model.SubmitReviewRequest")).
					Return(nil, model.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Fail - Missing tenant ID",
			tenantID:       nil,
			cardIDParam:    targetCardID.String(),
			body:           model.SubmitReviewRequest{Feedback: feedbackPtr("easy")},
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()
			url := fmt.Sprintf("/api/v1/reviews/%s", tc.cardIDParam)
			req := createRequest(t, "POST", url, tc.body, tc.tenantID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var respCard model.Card
				err := json.Unmarshal(rr.Body.Bytes(), &respCard)
				assert.NoError(t, err)
				assert.Equal(t, targetCardID, respCard.CardID)
				assert.Equal(t, 5, respCard.Interval)
			}
			mockReviewService.AssertExpectations(t)
		})
	}
}

func TestReviewHandler_SubmitReviewByQuestion(t *testing.T) {
	// --- セットアップ ---
	currentTestTenantID := uuid.New()
	targetCardID := uuid.New()

	mockReviewService := mocks.NewReviewService(t)
	reviewHandler := handlers.NewReviewHandler(mockReviewService, nil)
	router := chi.NewRouter()
	router.Use(middleware.DevTenantContextMiddleware)
	router.Post("/api/v1/reviews/by-question", reviewHandler.SubmitReviewByQuestion)
	// ------------------

	reviewedCard := &model.Card{
		CardID:   targetCardID,
		TenantID: currentTestTenantID,
		Question: "フランスの首都は？",
		Answer:   "パリ",
		Interval: 2,
		Ease:     2.5,
	}

	tests := []struct {
		name           string
		tenantID       *uuid.UUID
		body           interface{}
		setupMock      func()
		expectedStatus int
	}{
		{
			name:     "Success - Card resolved by question text",
			tenantID: &currentTestTenantID,
			body:     model.SubmitReviewByQuestionRequest{Question: "フランスの首都は？", Feedback: feedbackPtr("easy")},
			setupMock: func() {
				mockReviewService.On("SubmitReviewByQuestion", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, mock.AnythingOfType("*model.SubmitReviewByQuestionRequest")).
					Return(reviewedCard, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Fail - Missing question",
			tenantID:       &currentTestTenantID,
			body:           model.SubmitReviewByQuestionRequest{Feedback: feedbackPtr("easy")},
			setupMock:      func() { /* requiredバリデーションで弾かれる */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "Fail - No card matches question",
			tenantID: &currentTestTenantID,
			body:     model.SubmitReviewByQuestionRequest{Question: "未知の問題", Feedback: feedbackPtr("easy")},
			setupMock: func() {
				mockReviewService.On("SubmitReviewByQuestion", mock.AnythingOfType("*context.valueCtx"), currentTestTenantID, mock.AnythingOfType("*model.SubmitReviewByQuestionRequest")).
					Return(nil, model.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Fail - Missing tenant ID",
			tenantID:       nil,
			body:           model.SubmitReviewByQuestionRequest{Question: "Q", Feedback: feedbackPtr("easy")},
			setupMock:      func() { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()
			req := createRequest(t, "POST", "/api/v1/reviews/by-question", tc.body, tc.tenantID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var respCard model.Card
				err := json.Unmarshal(rr.Body.Bytes(), &respCard)
				assert.NoError(t, err)
				assert.Equal(t, targetCardID, respCard.CardID)
			}
			mockReviewService.AssertExpectations(t)
		})
	}
}
