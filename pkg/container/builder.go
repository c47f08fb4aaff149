package container

import (
	"strings"
	"sync"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/pkg/errors"
)

type ContainerType string

const ContainerTypeMongoDB ContainerType = "mongodb"

type ContainerInfo struct {
	Name string
	Type ContainerType
}

// ContainerBuilder starts throwaway containers for integration tests and removes them in
// PruneAll.
type ContainerBuilder struct {
	pool *dockertest.Pool

	mu         sync.Mutex
	containers map[string]ContainerInfo
}

// NewContainerBuilder connects to the docker daemon at endpoint, or the environment
// default when endpoint is empty.
func NewContainerBuilder(endpoint string) (*ContainerBuilder, error) {
	pool, err := dockertest.NewPool(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "connect docker")
	}
	if err := pool.Client.Ping(); err != nil {
		return nil, errors.Wrap(err, "ping docker")
	}
	pool.MaxWait = 90 * time.Second
	return &ContainerBuilder{
		pool:       pool,
		containers: make(map[string]ContainerInfo),
	}, nil
}

// FindContainer returns the container with exactly this name, or nil.
func (b *ContainerBuilder) FindContainer(name string) (*docker.APIContainers, error) {
	containers, err := b.pool.Client.ListContainers(docker.ListContainersOptions{
		All:     true,
		Filters: map[string][]string{"name": {name}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "list containers")
	}
	for i := range containers {
		for _, n := range containers[i].Names {
			if strings.TrimPrefix(n, "/") == name {
				return &containers[i], nil
			}
		}
	}
	return nil, nil
}

func (b *ContainerBuilder) RunWithOptions(opts *dockertest.RunOptions) (*dockertest.Resource, error) {
	resource, err := b.pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "run container %s", opts.Name)
	}
	return resource, nil
}

func (b *ContainerBuilder) AddContainer(id string, info ContainerInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.containers[id] = info
}

// Retry calls fn with exponential backoff until it succeeds or the pool's MaxWait passes.
func (b *ContainerBuilder) Retry(fn func() error) error {
	return b.pool.Retry(fn)
}

// PruneAll force-removes every container registered with AddContainer.
func (b *ContainerBuilder) PruneAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, info := range b.containers {
		err := b.pool.Client.RemoveContainer(docker.RemoveContainerOptions{
			ID:            id,
			Force:         true,
			RemoveVolumes: true,
		})
		var noSuch *docker.NoSuchContainer
		if err != nil && !errors.As(err, &noSuch) {
			return errors.Wrapf(err, "remove %s container %s", info.Type, info.Name)
		}
		delete(b.containers, id)
	}
	return nil
}
