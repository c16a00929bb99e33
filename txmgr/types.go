package txmgr

// TransactionLevel defines the transaction isolation level.
type TransactionLevel int

// Transaction isolation levels from lowest to highest isolation.
const (
	TxLevelDefault    TransactionLevel = 0 // Default is TxReadCommitted
	TxReadUncommitted TransactionLevel = 1 // Lowest isolation level
	TxReadCommitted   TransactionLevel = 2 // Prevents dirty reads
	TxRepeatableRead  TransactionLevel = 3 // Every read in the transaction sees one snapshot
	TxSerializable    TransactionLevel = 4 // Highest isolation level
)

func (l TransactionLevel) String() string {
	switch l {
	case TxLevelDefault:
		return "default"
	case TxReadUncommitted:
		return "read uncommitted"
	case TxReadCommitted:
		return "read committed"
	case TxRepeatableRead:
		return "repeatable read"
	case TxSerializable:
		return "serializable"
	}
	return "unknown"
}

// TransactionMode defines the transaction access mode.
type TransactionMode int

// Transaction operation modes.
const (
	TxModeDefault TransactionMode = 0 // TxReadWrite
	TxReadOnly    TransactionMode = 1
	TxReadWrite   TransactionMode = 2
)

func (m TransactionMode) String() string {
	switch m {
	case TxModeDefault:
		return "default"
	case TxReadOnly:
		return "read only"
	case TxReadWrite:
		return "read write"
	}
	return "unknown"
}
