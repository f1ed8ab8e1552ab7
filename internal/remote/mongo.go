package remote

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/univflow/admission-api/internal/models"
)

// MongoClient is the authoritative store over the `users` and `students`
// collections. Its methods report failure the way the workflow expects:
// list operations return an empty slice, create returns nil, updates return
// false. Errors are logged here, never propagated.
type MongoClient struct {
	db *mongo.Database
}

func NewMongoClient(db *mongo.Database) *MongoClient {
	return &MongoClient{db: db}
}

// ListAgents returns every agent-role user, or an empty slice on any failure.
func (c *MongoClient) ListAgents(ctx context.Context) []models.User {
	cursor, err := c.db.Collection("users").Find(ctx, bson.M{"role": models.RoleAgent})
	if err != nil {
		log.Printf("remote: list agents failed: %v", err)
		return nil
	}
	defer cursor.Close(ctx)

	var agents []models.User
	if err := cursor.All(ctx, &agents); err != nil {
		log.Printf("remote: decode agents failed: %v", err)
		return nil
	}
	return agents
}

// ListStudents returns the full students collection, newest first, or an
// empty slice on any failure.
func (c *MongoClient) ListStudents(ctx context.Context) []models.Student {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := c.db.Collection("students").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Printf("remote: list students failed: %v", err)
		return nil
	}
	defer cursor.Close(ctx)

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		log.Printf("remote: decode students failed: %v", err)
		return nil
	}
	return students
}

// CreateStudent persists a new record and returns it with its assigned id,
// or nil on failure. The id exists only after this call succeeds.
func (c *MongoClient) CreateStudent(ctx context.Context, s models.Student) *models.Student {
	now := time.Now().UTC()
	s.ID = primitive.NewObjectID().Hex()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := c.db.Collection("students").InsertOne(ctx, s); err != nil {
		log.Printf("remote: create student failed: %v", err)
		return nil
	}
	return &s
}

// UpdateStudent applies a partial update to one record.
func (c *MongoClient) UpdateStudent(ctx context.Context, id string, patch models.StudentPatch) bool {
	set := patchToSet(patch)
	set["updatedAt"] = time.Now().UTC()

	result, err := c.db.Collection("students").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		log.Printf("remote: update student %s failed: %v", id, err)
		return false
	}
	return result.MatchedCount > 0
}

// DeleteStudent removes a record. Administrative capability, not part of the
// normal workflow.
func (c *MongoClient) DeleteStudent(ctx context.Context, id string) bool {
	result, err := c.db.Collection("students").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Printf("remote: delete student %s failed: %v", id, err)
		return false
	}
	return result.DeletedCount > 0
}

// SaveAgent upserts an agent document under its id.
func (c *MongoClient) SaveAgent(ctx context.Context, u models.User) bool {
	if u.ID == "" {
		return false
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := c.db.Collection("users").ReplaceOne(ctx, bson.M{"_id": u.ID}, u, opts); err != nil {
		log.Printf("remote: save agent %s failed: %v", u.ID, err)
		return false
	}
	return true
}

// UpdateAgent overwrites the mutable fields of an agent document.
func (c *MongoClient) UpdateAgent(ctx context.Context, id string, u models.User) bool {
	set := bson.M{
		"name":    u.Name,
		"mobile":  u.Mobile,
		"agentId": u.AgentID,
	}
	if u.Username != "" {
		set["username"] = u.Username
	}
	result, err := c.db.Collection("users").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		log.Printf("remote: update agent %s failed: %v", id, err)
		return false
	}
	return result.MatchedCount > 0
}

// DeleteAgent removes an agent document.
func (c *MongoClient) DeleteAgent(ctx context.Context, id string) bool {
	result, err := c.db.Collection("users").DeleteOne(ctx, bson.M{"_id": id, "role": models.RoleAgent})
	if err != nil {
		log.Printf("remote: delete agent %s failed: %v", id, err)
		return false
	}
	return result.DeletedCount > 0
}

func patchToSet(p models.StudentPatch) bson.M {
	set := bson.M{}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.CurrentStage != nil {
		set["currentStage"] = *p.CurrentStage
	}
	if p.Stage != nil {
		set["stage"] = *p.Stage
	}
	if p.ApplicationFee != nil {
		set["applicationFee"] = *p.ApplicationFee
	}
	if p.ApplicationDate != nil {
		set["applicationDate"] = *p.ApplicationDate
	}
	if p.ApplicationNo != nil {
		set["applicationNo"] = *p.ApplicationNo
	}
	if p.RegistrationFee != nil {
		set["registrationFee"] = *p.RegistrationFee
	}
	if p.RegistrationDate != nil {
		set["registrationDate"] = *p.RegistrationDate
	}
	if p.RegistrationNo != nil {
		set["registrationNo"] = *p.RegistrationNo
	}
	if p.VisitDetails != nil {
		set["visitDetails"] = *p.VisitDetails
	}
	if p.AdmissionDetails != nil {
		set["admissionDetails"] = *p.AdmissionDetails
	}
	if p.Remarks != nil {
		set["remarks"] = *p.Remarks
	}
	return set
}
