package loadgen

import (
	"fmt"

	locustv1 "github.com/NVIDIA/locust-operator/pkg/api/v1"
)

// Role is the function of a node within a test.
type Role string

const (
	RoleMaster Role = locustv1.RoleKeyMaster
	RoleWorker Role = locustv1.RoleKeyWorker
)

// Roles lists every role in creation order.
var Roles = []Role{RoleMaster, RoleWorker}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleMaster || r == RoleWorker
}

func (r Role) String() string {
	return string(r)
}

// Node is the fully resolved deployment configuration of one role.
// Labels and Annotations are never nil.
type Node struct {
	Name                    string
	Labels                  map[string]string
	Annotations             map[string]string
	Affinity                *locustv1.LocustTestAffinity
	Tolerations             []locustv1.LocustTestToleration
	TTLSecondsAfterFinished *int32
	Command                 []string
	Role                    Role
	Image                   string
	ImagePullPolicy         string
	ImagePullSecrets        []string
	Replicas                int32
	Ports                   []int32
	ConfigMap               string
	LibConfigMap            string
}

// IsMaster reports whether the node is the test master.
func (n *Node) IsMaster() bool {
	return n.Role == RoleMaster
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(role=%s, replicas=%d)", n.Name, n.Role, n.Replicas)
}
