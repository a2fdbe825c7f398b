// Package worldorder provides the WorldOrder aggregate: the persisted record of a
// command sent to the world simulator. Its store-assigned sequence number travels
// inside the command so that errors reported later by the world can be traced
// back to the order that caused them.
package worldorder
