// Package projection converts depth frames into 3D intensity point clouds.
//
// The projector maps each pixel through a spherical model derived from the
// sensor's field of view: pixel offsets from the optical centre give the
// azimuthal angle, the offset magnitude over the focal length gives the
// polar angle, and the measured depth is the radial distance.
package projection
