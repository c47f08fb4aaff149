package container

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pkg/errors"
	mongo "go.mongodb.org/mongo-driver/v2/mongo"
	mongooption "go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoContainerConnection struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

const (
	mongoDBPort  = 27017
	mongoDBImage = "mongo"
	mongoDBTag   = "8.2.2"
)

// RunMongoContainer starts a MongoDB container, or reuses a running one with the same name,
// and waits until it answers ping.
func RunMongoContainer(builder *ContainerBuilder, name string, options MongoContainerConnection) (MongoContainerConnection, error) {
	existing, err := builder.FindContainer(name)
	if err != nil {
		return MongoContainerConnection{}, err
	}
	if existing != nil && existing.State == "running" {
		conn, err := reuseMongoContainer(existing, options)
		if err != nil {
			return MongoContainerConnection{}, errors.Wrapf(err, "reuse mongo container %s", name)
		}
		builder.AddContainer(existing.ID, ContainerInfo{Name: name, Type: ContainerTypeMongoDB})
		return conn, nil
	}

	runOptions := dockertest.RunOptions{
		Name:       name,
		Repository: mongoDBImage,
		Tag:        mongoDBTag,
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=" + options.Username,
			"MONGO_INITDB_ROOT_PASSWORD=" + options.Password,
		},
	}
	if options.Database != "" {
		runOptions.Env = append(runOptions.Env, "MONGO_INITDB_DATABASE="+options.Database)
	}
	if options.Port != "" {
		runOptions.PortBindings = map[docker.Port][]docker.PortBinding{
			docker.Port(strconv.Itoa(mongoDBPort) + "/tcp"): {{HostIP: "127.0.0.1", HostPort: options.Port}},
		}
	}
	resource, err := builder.RunWithOptions(&runOptions)
	if err != nil {
		return MongoContainerConnection{}, err
	}
	builder.AddContainer(resource.Container.ID, ContainerInfo{Name: name, Type: ContainerTypeMongoDB})

	conn := MongoContainerConnection{
		Host:     resource.GetBoundIP(strconv.Itoa(mongoDBPort) + "/tcp"),
		Port:     resource.GetPort(strconv.Itoa(mongoDBPort) + "/tcp"),
		Username: options.Username,
		Password: options.Password,
		Database: options.Database,
	}
	err = builder.Retry(func() error {
		return pingMongo(conn)
	})
	if err != nil {
		return MongoContainerConnection{}, errors.Wrapf(err, "mongo container %s never became ready", name)
	}
	return conn, nil
}

func reuseMongoContainer(c *docker.APIContainers, options MongoContainerConnection) (MongoContainerConnection, error) {
	for _, bind := range c.Ports {
		if bind.PrivatePort == mongoDBPort && bind.PublicPort != 0 {
			host := bind.IP
			if host == "" || host == "0.0.0.0" {
				host = "127.0.0.1"
			}
			return MongoContainerConnection{
				Host:     host,
				Port:     strconv.FormatInt(bind.PublicPort, 10),
				Username: options.Username,
				Password: options.Password,
				Database: options.Database,
			}, nil
		}
	}
	return MongoContainerConnection{}, errors.New("no public port bound to 27017")
}

func pingMongo(conn MongoContainerConnection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%s", conn.Username, conn.Password, conn.Host, conn.Port)
	client, err := mongo.Connect(mongooption.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	return client.Ping(ctx, nil)
}
