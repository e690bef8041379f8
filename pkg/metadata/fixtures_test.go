package metadata

// Shared fixtures: a small but structurally complete runtime with a
// System and a Balances module, built per schema version.

func dd[T any](v T) DecodeDifferent[T] {
	return DecodeDifferent[T]{Decoded: &v}
}

func ddp[T any](v T) *DecodeDifferent[T] {
	w := dd(v)
	return &w
}

func systemModuleV12() ModuleMetadataV12 {
	return ModuleMetadataV12{
		Name: dd("System"),
		Storage: ddp(StorageMetadataV12{
			Prefix: dd("System"),
			Entries: dd([]StorageEntryV12{
				{
					Name:     dd("Number"),
					Modifier: ModifierDefault,
					Type:     StorageEntryTypeV12{Plain: ddp("T::BlockNumber")},
					Default:  dd(HexBytes{0, 0, 0, 0}),
					Docs:     dd([]string{"The current block number."}),
				},
				{
					Name:     dd("Account"),
					Modifier: ModifierDefault,
					Type: StorageEntryTypeV12{Map: &MapTypeV12{
						Hasher: HasherBlake2_128Concat,
						Key:    dd("T::AccountId"),
						Value:  dd("AccountInfo<T>"),
					}},
					Default: dd(HexBytes{}),
					Docs:    dd([]string{"The full account information."}),
				},
			}),
		}),
		Calls: ddp([]FunctionMetadata{
			{
				Name: dd("remark"),
				Args: dd([]FunctionArgumentMetadata{
					{Name: dd("remark"), Type: dd("Vec<u8>")},
				}),
				Docs: dd([]string{"Make some on-chain remark."}),
			},
			{
				Name: dd("set_code"),
				Args: dd([]FunctionArgumentMetadata{
					{Name: dd("code"), Type: dd("Vec<u8>")},
				}),
				Docs: dd([]string{}),
			},
		}),
		Events: ddp([]EventMetadata{
			{
				Name: dd("ExtrinsicSuccess"),
				Args: dd([]string{"DispatchInfo"}),
				Docs: dd([]string{}),
			},
		}),
		Constants: dd([]ModuleConstantMetadata{
			{
				Name:  dd("BlockHashCount"),
				Type:  dd("T::BlockNumber"),
				Value: dd(HexBytes{0x60, 0x09, 0, 0}),
				Docs:  dd([]string{}),
			},
		}),
		Errors: dd([]ErrorMetadata{
			{Name: dd("InvalidSpecName"), Docs: dd([]string{})},
		}),
		Index: 0,
	}
}

func balancesModuleV12() ModuleMetadataV12 {
	return ModuleMetadataV12{
		Name:    dd("Balances"),
		Storage: nil,
		Calls: ddp([]FunctionMetadata{
			{
				Name: dd("transfer"),
				Args: dd([]FunctionArgumentMetadata{
					{Name: dd("dest"), Type: dd("<T::Lookup as StaticLookup>::Source")},
					{Name: dd("value"), Type: dd("Compact<T::Balance>")},
				}),
				Docs: dd([]string{"Transfer some liquid free balance to another account."}),
			},
			{
				Name: dd("set_balance"),
				Args: dd([]FunctionArgumentMetadata{}),
				Docs: dd([]string{}),
			},
		}),
		Events:    nil,
		Constants: dd([]ModuleConstantMetadata{}),
		Errors: dd([]ErrorMetadata{
			{Name: dd("InsufficientBalance"), Docs: dd([]string{"Balance too low."})},
		}),
		Index: 4,
	}
}

func sampleV12() *RuntimeMetadata {
	return &RuntimeMetadata{V12: &MetadataV12{
		Modules: dd([]ModuleMetadataV12{systemModuleV12(), balancesModuleV12()}),
		Extrinsic: ExtrinsicMetadataV12{
			Version: 4,
			SignedExtensions: []DecodeDifferent[string]{
				dd("CheckSpecVersion"), dd("CheckNonce"), dd("ChargeTransactionPayment"),
			},
		},
	}}
}

func sampleV13() *RuntimeMetadata {
	return &RuntimeMetadata{V13: &MetadataV13{
		Modules: dd([]ModuleMetadataV13{
			{
				Name: dd("XStaking"),
				Storage: ddp(StorageMetadataV13{
					Prefix: dd("XStaking"),
					Entries: dd([]StorageEntryV13{
						{
							Name:     dd("Nominations"),
							Modifier: ModifierDefault,
							Type: StorageEntryTypeV13{NMap: &NMapTypeV13{
								Keys:    dd([]string{"T::AccountId", "T::AccountId"}),
								Hashers: []StorageHasher{HasherTwox64Concat, HasherTwox64Concat},
								Value:   dd("NominatorLedger<T>"),
							}},
							Default: dd(HexBytes{}),
							Docs:    dd([]string{}),
						},
					}),
				}),
				Calls: ddp([]FunctionMetadata{
					{
						Name: dd("bond"),
						Args: dd([]FunctionArgumentMetadata{
							{Name: dd("target"), Type: dd("T::AccountId")},
							{Name: dd("value"), Type: dd("Compact<T::Balance>")},
						}),
						Docs: dd([]string{}),
					},
				}),
				Events:    nil,
				Constants: dd([]ModuleConstantMetadata{}),
				Errors:    dd([]ErrorMetadata{}),
				Index:     7,
			},
		}),
		Extrinsic: ExtrinsicMetadataV12{
			Version:          4,
			SignedExtensions: []DecodeDifferent[string]{dd("CheckNonce")},
		},
	}}
}

func sampleV14() *RuntimeMetadata {
	boolID := TypeID(0)
	emptyTuple := SiTuple{}
	return &RuntimeMetadata{V14: &MetadataV14{
		Types: []PortableType{
			{ID: 0, Type: SiType{Def: SiTypeDef{Primitive: primPtr(0)}}}, // bool
			{ID: 1, Type: SiType{
				Path: []string{"pallet_balances", "pallet", "Call"},
				Params: []SiTypeParameter{
					{Name: "T", Type: nil},
				},
				Def: SiTypeDef{Variant: &SiVariantDef{Variants: []SiVariant{
					{Name: "transfer", Index: 0, Fields: []SiField{
						{Name: strPtr("dest"), Type: 0, TypeName: strPtr("AccountIdLookupOf<T>")},
					}},
					{Name: "set_balance", Index: 1},
				}}},
				Docs: []string{"Dispatchable calls."},
			}},
			{ID: 2, Type: SiType{Def: SiTypeDef{Tuple: &emptyTuple}}},
			{ID: 3, Type: SiType{Def: SiTypeDef{Sequence: &SiSequence{Type: 0}}}},
		},
		Pallets: []PalletMetadataV14{
			{
				Name: "System",
				Storage: &PalletStorageV14{
					Prefix: "System",
					Entries: []StorageEntryV14{
						{
							Name:     "Number",
							Modifier: ModifierDefault,
							Type:     StorageEntryTypeV14{Plain: &boolID},
							Default:  HexBytes{0},
							Docs:     []string{"The current block number."},
						},
					},
				},
				Constants: []PalletConstantV14{
					{Name: "Version", Type: 0, Value: HexBytes{1}, Docs: []string{}},
				},
				Index: 0,
			},
			{
				Name:  "Balances",
				Calls: &PalletCallV14{Type: 1},
				Errors: &PalletErrorV14{Type: 2},
				Index: 5,
			},
		},
		Extrinsic: ExtrinsicMetadataV14{
			Type:    3,
			Version: 4,
			SignedExtensions: []SignedExtensionV14{
				{Identifier: "CheckNonce", Type: 0, AdditionalSigned: 2},
			},
		},
		RuntimeType: 2,
	}}
}

func primPtr(p SiPrimitive) *SiPrimitive { return &p }
func strPtr(s string) *string            { return &s }
