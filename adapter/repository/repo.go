package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/procwarden/procwarden/config"
	"github.com/procwarden/procwarden/scanner/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	detectionCollection   = "detections"
	defaultConnectTimeout = 5 * time.Second
)

// Repository is the MongoDB backed detection audit store.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewRepository connects and pings the server before returning.
func NewRepository(ctx context.Context, cfg config.MongoDBConfig) (*Repository, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	mongoOpts := options.Client().
		ApplyURI(cfg.URI()).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(mongoOpts)
	if err != nil {
		return nil, errors.Wrap(err, "connect mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrapf(err, "ping mongodb at %s:%s", cfg.Host, cfg.Port)
	}
	return &Repository{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

type detectionDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	CycleID      string        `bson:"cycleID"`
	MachineID    string        `bson:"machineID"`
	PID          int32         `bson:"pid"`
	Name         string        `bson:"name"`
	Path         string        `bson:"path,omitempty"`
	Digest       string        `bson:"digest,omitempty"`
	Result       string        `bson:"result"`
	State        string        `bson:"state"`
	Reason       string        `bson:"reason,omitempty"`
	DetectedTime int64         `bson:"detectedTime"`
}

func newDetectionDocument(d *domain.Detection) detectionDocument {
	return detectionDocument{
		ID:           bson.NewObjectID(),
		CycleID:      d.CycleID,
		MachineID:    d.MachineID,
		PID:          d.PID,
		Name:         d.Name,
		Path:         d.Path,
		Digest:       d.Digest,
		Result:       d.Result.String(),
		State:        d.State.String(),
		Reason:       d.Reason,
		DetectedTime: d.DetectedAt.UnixMilli(),
	}
}

func (doc detectionDocument) toDomain() *domain.Detection {
	result, _ := domain.ParseScanResult(doc.Result)
	state, _ := domain.ParseDetectionState(doc.State)
	return &domain.Detection{
		ID:         doc.ID.Hex(),
		CycleID:    doc.CycleID,
		MachineID:  doc.MachineID,
		PID:        doc.PID,
		Name:       doc.Name,
		Path:       doc.Path,
		Digest:     doc.Digest,
		Result:     result,
		State:      state,
		Reason:     doc.Reason,
		DetectedAt: time.UnixMilli(doc.DetectedTime).UTC(),
	}
}

// InsertDetections stores the records and fills in their IDs.
func (r *Repository) InsertDetections(ctx context.Context, detections []*domain.Detection) error {
	if len(detections) == 0 {
		return nil
	}
	docs := make([]any, 0, len(detections))
	for _, d := range detections {
		if d == nil {
			return errors.New("nil detection")
		}
		doc := newDetectionDocument(d)
		d.ID = doc.ID.Hex()
		docs = append(docs, doc)
	}
	_, err := r.db.Collection(detectionCollection).InsertMany(ctx, docs)
	return errors.Wrap(err, "insert detections")
}

func (r *Repository) QueryDetections(ctx context.Context, opt *domain.QueryDetectionOptions) error {
	if opt == nil {
		return errors.New("nil query options")
	}
	filter := bson.M{}
	if opt.CycleID != "" {
		filter["cycleID"] = opt.CycleID
	}
	if len(opt.PIDs) > 0 {
		filter["pid"] = bson.M{"$in": opt.PIDs}
	}
	if len(opt.Results) > 0 {
		results := make([]string, 0, len(opt.Results))
		for _, res := range opt.Results {
			results = append(results, res.String())
		}
		filter["result"] = bson.M{"$in": results}
	}
	if !opt.Since.IsZero() {
		filter["detectedTime"] = bson.M{"$gte": opt.Since.UnixMilli()}
	}

	findOpts := options.Find().SetSort(bson.D{
		{Key: "detectedTime", Value: -1},
		{Key: "_id", Value: -1},
	})
	if opt.Limit > 0 {
		findOpts.SetLimit(opt.Limit)
	}
	cursor, err := r.db.Collection(detectionCollection).Find(ctx, filter, findOpts)
	if err != nil {
		return errors.Wrap(err, "find detections")
	}
	defer cursor.Close(ctx)

	var docs []detectionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return errors.Wrap(err, "decode detections")
	}
	opt.Result = make([]*domain.Detection, 0, len(docs))
	for _, doc := range docs {
		opt.Result = append(opt.Result, doc.toDomain())
	}
	return nil
}
