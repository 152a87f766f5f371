package internal

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"omnikassa/config"
	"omnikassa/entity"
	"omnikassa/services"
)

const (
	collectionLog      = "payment_log"
	collectionRequests = "payment_requests"
	collectionResults  = "payment_results"
)

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client, nil
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(ctx context.Context, connection *mongo.Client) {
	err := connection.Disconnect(ctx)
	if err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

func (m *MongoDB) WriteLogMessage(data services.Data) error {
	connection, err := m.connect(m.ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(m.ctx, connection)

	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(m.ctx, data)
	return err
}

func (m *MongoDB) SavePaymentRequest(ctx context.Context, record *entity.PaymentRecord) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionRequests)
	filter := bson.D{{Key: "transaction_reference", Value: record.TransactionReference}}
	set := bson.M{"$set": record}
	_, err = collection.UpdateOne(ctx, filter, set, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save payment request: %w", err)
	}
	return nil
}

func (m *MongoDB) SavePaymentResult(ctx context.Context, result *entity.PaymentResult) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionResults)
	if _, err = collection.InsertOne(ctx, result); err != nil {
		return fmt.Errorf("save payment result: %w", err)
	}
	return nil
}

// GetPaymentResult returns the latest stored result for a transaction reference,
// nil if there is none.
func (m *MongoDB) GetPaymentResult(ctx context.Context, transactionReference string) (*entity.PaymentResult, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(ctx, connection)

	collection := connection.Database(m.database).Collection(collectionResults)
	filter := bson.D{{Key: "transaction_reference", Value: transactionReference}}
	opt := options.FindOne().SetSort(bson.D{{Key: "time_received", Value: -1}})
	var result entity.PaymentResult
	if err = collection.FindOne(ctx, filter, opt).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
