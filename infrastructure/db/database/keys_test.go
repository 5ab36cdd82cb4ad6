package database

import (
	"bytes"
	"reflect"
	"testing"
)

func makeBucketJoin(path ...[]byte) []byte {
	return append(bytes.Join(path, bucketSeparator), bucketSeparator...)
}

func TestBucketPath(t *testing.T) {
	tests := []struct {
		bucketByteSlices [][]byte
		expectedPath     []byte
	}{
		{
			bucketByteSlices: [][]byte{[]byte("hello")},
			expectedPath:     []byte("hello/"),
		},
		{
			bucketByteSlices: [][]byte{[]byte("hello"), []byte("world")},
			expectedPath:     []byte("hello/world/"),
		},
	}

	for _, test := range tests {
		// Build a result using the MakeBucket function alone
		resultKey := MakeBucket(test.bucketByteSlices...).Path()
		if !reflect.DeepEqual(resultKey, test.expectedPath) {
			t.Errorf("TestBucketPath: got wrong path using MakeBucket. "+
				"Want: %s, got: %s", string(test.expectedPath), string(resultKey))
		}

		// Build a result using sub-Bucket calls
		bucket := MakeBucket()
		for _, bucketBytes := range test.bucketByteSlices {
			bucket = bucket.Bucket(bucketBytes)
		}
		resultKey = bucket.Path()
		if !reflect.DeepEqual(resultKey, test.expectedPath) {
			t.Errorf("TestBucketPath: got wrong path using sub-Bucket "+
				"calls. Want: %s, got: %s", string(test.expectedPath), string(resultKey))
		}
	}
}

func TestBucketKey(t *testing.T) {
	key := MakeBucket([]byte("blocks")).Key([]byte("abc"))
	expected := append(makeBucketJoin([]byte("blocks")), []byte("abc")...)
	if !bytes.Equal(key.Bytes(), expected) {
		t.Fatalf("TestBucketKey: Want: %s, got: %s", string(expected), string(key.Bytes()))
	}
	if !bytes.Equal(key.Suffix(), []byte("abc")) {
		t.Fatalf("TestBucketKey: unexpected suffix %s", string(key.Suffix()))
	}
}
