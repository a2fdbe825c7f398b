package kernel

// TruckID identifies a truck. It is assigned by the store when the truck is created
// and is the identity the world simulator knows the truck by.
type TruckID int32

// WarehouseID identifies a warehouse in the world.
type WarehouseID int32

// PackageID identifies a package. It is assigned by the order source.
type PackageID int64

// UserID identifies the customer who requested a delivery.
type UserID int64

// NoUser is stored as the requester of packages whose request carried no user.
const NoUser UserID = -1

// WorldID identifies a simulated world.
type WorldID int64

// SeqNo is the store-assigned sequence number of a command sent to the world.
type SeqNo int64
