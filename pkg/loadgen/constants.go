package loadgen

const (
	// MasterReplicaCount is the fixed number of master pods.
	MasterReplicaCount int32 = 1

	// MasterCommPort and MasterBindPort carry master/worker traffic.
	// MasterCommPort is the port workers dial.
	MasterCommPort int32 = 5557
	MasterBindPort int32 = 5558

	// WebUIPort serves the master web UI and the stats endpoint scraped by
	// the metrics exporter.
	WebUIPort int32 = 8089

	// WorkerPort is the single port exposed by worker containers.
	WorkerPort int32 = 8080

	// argSeparator splits a command template into container args.
	argSeparator = " "
)

// masterPorts is ordered; index 0 is the port workers connect to.
var masterPorts = []int32{MasterCommPort, MasterBindPort, WebUIPort}

// masterCommandTemplate takes the seed, the comm port and the expected
// worker count. The run starts once all workers joined and the process exits
// 60s after the run ends.
const masterCommandTemplate = "%s --master --master-port=%d --expect-workers=%d " +
	"--autostart --autoquit 60 --enable-rebalancing --only-summary "

// workerCommandTemplate takes the seed, the comm port and the master host.
const workerCommandTemplate = "%s --worker --master-port=%d --master-host=%s"
