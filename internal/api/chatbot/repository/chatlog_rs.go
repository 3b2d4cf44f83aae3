package chatbotRepository

import (
	"RestoBook/internal/entity"
	contextPkg "RestoBook/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ChatLogDB struct {
	ID         sql.NullString  `db:"id"`
	UserID     sql.NullString  `db:"user_id"`
	SessionID  sql.NullString  `db:"session_id"`
	Question   sql.NullString  `db:"question"`
	Answer     sql.NullString  `db:"answer"`
	Intent     sql.NullString  `db:"intent"`
	Confidence sql.NullFloat64 `db:"confidence"`
	Type       sql.NullString  `db:"type"`
	CreatedAt  time.Time       `db:"created_at"`
}

func (r *chatLogsRepository) CreateChatLog(ctx context.Context, chatLog entity.ChatLog) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         chatLog.ID,
		"user_id":    nullable(chatLog.UserID),
		"session_id": nullable(chatLog.SessionID),
		"question":   chatLog.Question,
		"answer":     chatLog.Answer,
		"intent":     nullable(chatLog.Intent),
		"confidence": chatLog.Confidence,
		"type":       chatLog.Type,
		"created_at": chatLog.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateChatLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateChatLog")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating chat log")
		return err
	}

	return nil
}

func (r *chatLogsRepository) GetChatLogsByUser(ctx context.Context, userID string, limit, offset int) ([]entity.ChatLog, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []ChatLogDB
	var total int

	countQuery, countArgs, err := sqlx.Named(queryCountChatLogsByUser, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountChatLogsByUser named query preparation err")
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountChatLogsByUser execution err")
		return nil, 0, err
	}

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	}

	query, args, err := sqlx.Named(queryGetChatLogsByUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetChatLogsByUser named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetChatLogsByUser execution err")
		return nil, 0, err
	}

	chatLogs := make([]entity.ChatLog, 0, len(rows))
	for _, row := range rows {
		chatLogs = append(chatLogs, entity.ChatLog{
			ID:         row.ID.String,
			UserID:     row.UserID.String,
			SessionID:  row.SessionID.String,
			Question:   row.Question.String,
			Answer:     row.Answer.String,
			Intent:     row.Intent.String,
			Confidence: row.Confidence.Float64,
			Type:       row.Type.String,
			CreatedAt:  row.CreatedAt,
		})
	}

	return chatLogs, total, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
