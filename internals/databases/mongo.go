package database

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"time"

	"schoolerp_backend/internals/configs"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	MongoClient *mongo.Client
	MongoDB     *mongo.Database
)

var tUUID = reflect.TypeOf(uuid.UUID{})

// NewMongoRegistry returns the default registry with uuid.UUID stored as
// BSON binary subtype 4.
func NewMongoRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tUUID, bsoncodec.ValueEncoderFunc(encodeUUID))
	reg.RegisterTypeDecoder(tUUID, bsoncodec.ValueDecoderFunc(decodeUUID))
	return reg
}

func encodeUUID(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tUUID {
		return bsoncodec.ValueEncoderError{Name: "UUIDEncodeValue", Types: []reflect.Type{tUUID}, Received: val}
	}
	id := val.Interface().(uuid.UUID)
	return vw.WriteBinaryWithSubtype(id[:], bsontype.BinaryUUID)
}

func decodeUUID(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tUUID {
		return bsoncodec.ValueDecoderError{Name: "UUIDDecodeValue", Types: []reflect.Type{tUUID}, Received: val}
	}
	switch vr.Type() {
	case bsontype.Null:
		val.Set(reflect.ValueOf(uuid.Nil))
		return vr.ReadNull()
	case bsontype.Undefined:
		val.Set(reflect.ValueOf(uuid.Nil))
		return vr.ReadUndefined()
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(id))
		return nil
	}
	data, _, err := vr.ReadBinary()
	if err != nil {
		return err
	}
	id, err := uuid.FromBytes(data)
	if err != nil {
		return fmt.Errorf("decode uuid: %w", err)
	}
	val.Set(reflect.ValueOf(id))
	return nil
}

func ConnectMongo() {
	uri := configs.GetEnv("MONGO_URI", "mongodb://localhost:27017")
	name := configs.GetEnv("MONGO_DB", "schoolerp")
	log.Println("🔌 Connecting to MongoDB...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetRegistry(NewMongoRegistry()).
		SetMaxPoolSize(uint64(configs.GetEnvInt("MONGO_MAX_POOL", 50))))
	if err != nil {
		log.Fatalf("❌ Mongo connection failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ Mongo ping failed: %v", err)
	}
	MongoClient = client
	MongoDB = client.Database(name)
	log.Printf("✅ Mongo connected (db=%s)", name)
}

func DisconnectMongo() {
	if MongoClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := MongoClient.Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect err: %v", err)
	}
}
