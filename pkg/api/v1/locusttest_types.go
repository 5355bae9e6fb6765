package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Role keys accepted in the per-role maps of LocustTestSpec.
const (
	RoleKeyMaster = "master"
	RoleKeyWorker = "worker"
)

// Toleration operators accepted in LocustTestToleration.
const (
	TolerationOpExists = "Exists"
	TolerationOpEqual  = "Equal"
)

// LocustTestNodeAffinity holds node labels a pod must be scheduled onto.
type LocustTestNodeAffinity struct {
	// RequiredDuringSchedulingIgnoredDuringExecution maps node label keys to
	// the value the node must carry.
	// +optional
	RequiredDuringSchedulingIgnoredDuringExecution map[string]string `json:"requiredDuringSchedulingIgnoredDuringExecution,omitempty"`
}

// LocustTestAffinity is the subset of pod affinity supported by the operator.
type LocustTestAffinity struct {
	// +optional
	NodeAffinity *LocustTestNodeAffinity `json:"nodeAffinity,omitempty"`
}

// LocustTestToleration is a pod toleration for a node taint.
type LocustTestToleration struct {
	// +kubebuilder:validation:Required
	Key string `json:"key"`

	// +kubebuilder:validation:Required
	// +kubebuilder:validation:Enum=Exists;Equal
	Operator string `json:"operator"`

	// Value is only meaningful with the Equal operator.
	// +optional
	Value string `json:"value,omitempty"`

	// +kubebuilder:validation:Required
	// +kubebuilder:validation:Enum=NoSchedule;PreferNoSchedule;NoExecute
	Effect string `json:"effect"`
}

// LocustTestSpec defines the desired load test topology.
type LocustTestSpec struct {
	// MasterCommandSeed is the base of the master command line, typically
	// the locustfile and host arguments.
	// +kubebuilder:validation:Required
	MasterCommandSeed string `json:"masterCommandSeed"`

	// WorkerCommandSeed is the base of the worker command line.
	// +kubebuilder:validation:Required
	WorkerCommandSeed string `json:"workerCommandSeed"`

	// WorkerReplicas is the number of worker pods.
	// +kubebuilder:validation:Minimum=0
	WorkerReplicas int32 `json:"workerReplicas"`

	// +kubebuilder:validation:Required
	Image string `json:"image"`

	// +kubebuilder:validation:Enum=Always;IfNotPresent;Never
	// +optional
	ImagePullPolicy string `json:"imagePullPolicy,omitempty"`

	// +optional
	ImagePullSecrets []string `json:"imagePullSecrets,omitempty"`

	// ConfigMap holds the test scripts. Nothing is mounted when empty.
	// +optional
	ConfigMap string `json:"configMap,omitempty"`

	// LibConfigMap holds shared library files for the test scripts.
	// +optional
	LibConfigMap string `json:"libConfigMap,omitempty"`

	// Labels are extra pod labels keyed by role ("master" or "worker").
	// +optional
	Labels map[string]map[string]string `json:"labels,omitempty"`

	// Annotations are extra pod annotations keyed by role ("master" or "worker").
	// +optional
	Annotations map[string]map[string]string `json:"annotations,omitempty"`

	// +optional
	Affinity *LocustTestAffinity `json:"affinity,omitempty"`

	// +optional
	Tolerations []LocustTestToleration `json:"tolerations,omitempty"`
}

// LocustTestStatus is intentionally empty; the operator does not report
// progress on the resource.
type LocustTestStatus struct{}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=lotest
// +kubebuilder:printcolumn:name="master_cmd",type=string,JSONPath=`.spec.masterCommandSeed`,description="Master pod command seed"
// +kubebuilder:printcolumn:name="worker_replica_count",type=integer,JSONPath=`.spec.workerReplicas`,description="Number of requested worker pods"
// +kubebuilder:printcolumn:name="Image",type=string,JSONPath=`.spec.image`,description="Locust image"
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// LocustTest is the Schema for the locusttests API.
type LocustTest struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   LocustTestSpec   `json:"spec,omitempty"`
	Status LocustTestStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// LocustTestList contains a list of LocustTest.
type LocustTestList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []LocustTest `json:"items"`
}

func init() {
	SchemeBuilder.Register(&LocustTest{}, &LocustTestList{})
}
