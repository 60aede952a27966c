package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openhaven/haven-backend/internal/models"
)

// ReportFilter narrows and pages report listings.
type ReportFilter struct {
	PostID    string
	CommentID string
	Status    string
	Limit     int64
	Offset    int64
}

// ReportRepository defines the interface for the report moderation queue
type ReportRepository interface {
	CreateReport(ctx context.Context, report *models.Report) error
	GetReportByID(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]models.Report, error)
	UpdateReportStatus(ctx context.Context, id, status string) error
}

// MongoReportRepository implements ReportRepository for MongoDB
type MongoReportRepository struct {
	collection *mongo.Collection
}

// NewMongoReportRepository creates a new MongoReportRepository
func NewMongoReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{collection: db.Collection("reports")}
}

// CreateReport inserts a new report. There is no uniqueness constraint:
// repeated reports on the same target are kept as an escalation signal.
func (r *MongoReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.Status == "" {
		report.Status = models.ReportStatusOpen
	}
	report.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// GetReportByID retrieves a report by ID
func (r *MongoReportRepository) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports retrieves reports newest first with pagination
func (r *MongoReportRepository) ListReports(ctx context.Context, filter ReportFilter) ([]models.Report, error) {
	query := bson.M{}
	if filter.PostID != "" {
		query["post_id"] = filter.PostID
	}
	if filter.CommentID != "" {
		query["comment_id"] = filter.CommentID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	findOptions := options.Find().
		SetSkip(filter.Offset).
		SetLimit(filter.Limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateReportStatus sets the review status of a report
func (r *MongoReportRepository) UpdateReportStatus(ctx context.Context, id, status string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
