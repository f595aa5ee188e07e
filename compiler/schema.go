package compiler

// Schema text for each archive resource (spec.md §3/§6: "the written
// schema string must match these exactly"). Kept as plain struct-literal
// text; the concrete byte grammar is owned by recordpack's Encode/Decode
// pairs, this is only the descriptive copy trailed onto each resource file
// and referenced from the top-level manifest.
const (
	schemaHeader = "struct Header { i32 bbox_left; i32 bbox_right; i32 bbox_top; i32 bbox_bottom; i32 coord_scale; u40 writingprogram_idx; u40 source_idx; i64 replication_ts; i64 replication_seq; u40 replication_base_url_idx; }"

	schemaTag = "struct Tag { u40 key_idx; u40 value_idx; }"

	schemaNode = "struct Node { i32 lat; i32 lon; @range(tags_index) u40 tag_first_idx; }"

	schemaWay = "struct Way { @range(tags_index) u40 tag_first_idx; @range(nodes_index) u40 ref_first_idx; }"

	schemaRelation = "struct Relation { @range(tags_index) u40 tag_first_idx; }"

	schemaNodeIndex = "struct NodeIndex { @explicit_reference(nodes) u40 value; }"
	schemaTagIndex  = "struct TagIndex { @explicit_reference(tags) u40 value; }"
	schemaIdIndex   = "struct Id { u40 value; }"

	schemaStringtable = "raw_data stringtable; // NUL-separated byte blob"

	schemaRelationMembers      = "multivector relation_members { variant 0 = NodeMember { @explicit_reference(nodes) u40 node_idx; @explicit_reference(stringtable) u40 role_idx; }; variant 1 = WayMember { @explicit_reference(ways) u40 way_idx; @explicit_reference(stringtable) u40 role_idx; }; variant 2 = RelationMember { @explicit_reference(relations) u40 relation_idx; @explicit_reference(stringtable) u40 role_idx; }; }"
	schemaRelationMembersIndex = "struct MultivectorIndex { @range(relation_members) u40 value; }"
)
