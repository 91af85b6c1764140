package models

import (
	"fmt"

	imageref "github.com/novln/docker-parser"
)

// ConfigMap holds plain string configuration data.
type ConfigMap struct {
	TypeMeta
	Metadata  ObjectMeta        `kform:"name=metadata"`
	Data      map[string]string `kform:"name=data"`
	Immutable *bool             `kform:"name=immutable"`
}

// Namespace scopes namespaced resources.
type Namespace struct {
	TypeMeta
	Metadata ObjectMeta `kform:"name=metadata"`
}

// Pod is a set of containers scheduled together.
type Pod struct {
	TypeMeta
	Metadata ObjectMeta `kform:"name=metadata"`
	Spec     PodSpec    `kform:"name=spec"`
}

type PodSpec struct {
	Containers    []Container `kform:"name=containers,required"`
	RestartPolicy string      `kform:"name=restartPolicy,optional,enum=Always|OnFailure|Never,default=Always"`
	NodeName      string      `kform:"name=nodeName,optional"`
}

type Container struct {
	Name    string          `kform:"name=name,desc='container name, unique within the pod'"`
	Image   string          `kform:"name=image,optional"`
	Command []string        `kform:"name=command"`
	Args    []string        `kform:"name=args"`
	Env     []EnvVar        `kform:"name=env"`
	Ports   []ContainerPort `kform:"name=ports"`
}

type EnvVar struct {
	Name  string `kform:"name=name"`
	Value string `kform:"name=value,optional"`
}

type ContainerPort struct {
	Name          string `kform:"name=name,optional"`
	ContainerPort int    `kform:"name=containerPort,min=1"`
	Protocol      string `kform:"name=protocol,optional,enum=TCP|UDP|SCTP,default=TCP"`
}

// ImageRef is a container image reference split into its components.
type ImageRef struct {
	Registry string
	Name     string
	Tag      string
}

func (r ImageRef) String() string {
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Name, r.Tag)
}

// ImageRef parses the container's image string. Omitted components take
// the usual defaults, docker.io and latest.
func (c Container) ImageRef() (ImageRef, error) {
	ref, err := imageref.Parse(c.Image)
	if err != nil {
		return ImageRef{}, fmt.Errorf("container %q: bad image %q: %w", c.Name, c.Image, err)
	}
	return ImageRef{
		Registry: ref.Registry(),
		Name:     ref.ShortName(),
		Tag:      ref.Tag(),
	}, nil
}
